package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

var filenameRe = regexp.MustCompile(`^(.+?)\s+-\s+(.+?)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)

// ParseFilename reads teams and score from "<Home> - <Away> <h>-<a>.<ext>".
func ParseFilename(name string) (schema.MatchInfo, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Join(strings.Fields(strings.ReplaceAll(base, "_", " ")), " ")

	m := filenameRe.FindStringSubmatch(base)
	if m == nil {
		return schema.MatchInfo{}, fmt.Errorf("%q: %w", name, schema.ErrFilenameFormat)
	}
	home, _ := strconv.Atoi(m[3])
	away, _ := strconv.Atoi(m[4])
	return schema.MatchInfo{
		HomeTeam:  strings.TrimSpace(m[1]),
		AwayTeam:  strings.TrimSpace(m[2]),
		Score:     fmt.Sprintf("%d-%d", home, away),
		HomeGoals: home,
		AwayGoals: away,
	}, nil
}
