package schema

// Custom string types for type safety.
type (
	// StatKey names a raw or flattened per-player statistic.
	StatKey string

	// MetricKey names a derived metric or a grading breakdown entry.
	MetricKey string

	// TeamStatKey names an aggregate team statistic.
	TeamStatKey string

	// Role is the functional role a player performed in a match.
	Role string

	// RoleGroup is one of the four functional groups that roles roll up into.
	RoleGroup string

	// Side identifies which team a player belongs to within a match.
	Side string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Raw column keys. Each one is the attempts side of a ratio column; the success
// side and expected values are flattened into the keys further below.
const (
	StatGoals          StatKey = "goals"
	StatAssists        StatKey = "assists"
	StatActions        StatKey = "actions"
	StatShots          StatKey = "shots"
	StatPasses         StatKey = "passes"
	StatCrosses        StatKey = "crosses"
	StatDribbles       StatKey = "dribbles"
	StatDuels          StatKey = "duels"
	StatLosses         StatKey = "losses"
	StatRecoveries     StatKey = "recoveries"
	StatCards          StatKey = "cards"
	StatDefensiveDuels StatKey = "defensiveDuels"
	StatAerialDuels    StatKey = "aerialDuels"
	StatInterceptions  StatKey = "interceptions"
	StatClearances     StatKey = "clearances"
	StatKeyPasses      StatKey = "keyPasses"

	// Goalkeeper block fields.
	StatShotsAgainst  StatKey = "shotsAgainst"
	StatConcededGoals StatKey = "concededGoals"
	StatSaves         StatKey = "saves"
	StatReflexSaves   StatKey = "reflexSaves"
	StatExits         StatKey = "exits"
	StatXCG           StatKey = "xcg"
)

// Flattened-only keys produced from the success side of ratio columns.
const (
	StatXG                StatKey = "xg"
	StatXA                StatKey = "xa"
	StatActionsSuccess    StatKey = "actionsSuccess"
	StatShotsOnTarget     StatKey = "shotsOnTarget"
	StatPassesSuccess     StatKey = "passesSuccess"
	StatCrossesSuccess    StatKey = "crossesSuccess"
	StatDribblesSuccess   StatKey = "dribblesSuccess"
	StatDuelsWon          StatKey = "duelsWon"
	StatLossesOwnHalf     StatKey = "lossesOwnHalf"
	StatRecoveriesOppHalf StatKey = "recoveriesOppHalf"
	StatYellowCards       StatKey = "yellowCards"
	StatRedCards          StatKey = "redCards"
	StatDefDuelsWon       StatKey = "defensiveDuelsWon"
	StatAerialDuelsWon    StatKey = "aerialDuelsWon"
)

// FieldColumns is the positional column layout of the field-player stat table.
var FieldColumns = []StatKey{
	StatGoals,
	StatAssists,
	StatActions,
	StatShots,
	StatPasses,
	StatCrosses,
	StatDribbles,
	StatDuels,
	StatLosses,
	StatRecoveries,
	StatCards,
	StatDefensiveDuels,
	StatAerialDuels,
	StatInterceptions,
	StatClearances,
	StatKeyPasses,
}

// ColumnFlattening maps a raw column to its flattened attempts/success/expected keys.
// An empty key means the column carries no such side.
type ColumnFlattening struct {
	Attempts StatKey
	Success  StatKey
	Expected StatKey
}

// FlattenRules describes how every raw column becomes named flat fields.
var FlattenRules = map[StatKey]ColumnFlattening{
	StatGoals:          {Attempts: StatGoals, Expected: StatXG},
	StatAssists:        {Attempts: StatAssists, Expected: StatXA},
	StatActions:        {Attempts: StatActions, Success: StatActionsSuccess},
	StatShots:          {Attempts: StatShots, Success: StatShotsOnTarget},
	StatPasses:         {Attempts: StatPasses, Success: StatPassesSuccess},
	StatCrosses:        {Attempts: StatCrosses, Success: StatCrossesSuccess},
	StatDribbles:       {Attempts: StatDribbles, Success: StatDribblesSuccess},
	StatDuels:          {Attempts: StatDuels, Success: StatDuelsWon},
	StatLosses:         {Attempts: StatLosses, Success: StatLossesOwnHalf},
	StatRecoveries:     {Attempts: StatRecoveries, Success: StatRecoveriesOppHalf},
	StatCards:          {Attempts: StatYellowCards, Success: StatRedCards},
	StatDefensiveDuels: {Attempts: StatDefensiveDuels, Success: StatDefDuelsWon},
	StatAerialDuels:    {Attempts: StatAerialDuels, Success: StatAerialDuelsWon},
	StatInterceptions:  {Attempts: StatInterceptions},
	StatClearances:     {Attempts: StatClearances},
	StatKeyPasses:      {Attempts: StatKeyPasses},
	StatShotsAgainst:   {Attempts: StatShotsAgainst},
	StatConcededGoals:  {Attempts: StatConcededGoals},
	StatSaves:          {Attempts: StatSaves},
	StatReflexSaves:    {Attempts: StatReflexSaves},
	StatExits:          {Attempts: StatExits},
	StatXCG:            {Expected: StatXCG},
}

// Derived metric keys.
const (
	MetricGoalsP90          MetricKey = "goals_p90"
	MetricAssistsP90        MetricKey = "assists_p90"
	MetricXGP90             MetricKey = "xg_p90"
	MetricXAP90             MetricKey = "xa_p90"
	MetricShotsP90          MetricKey = "shots_p90"
	MetricShotsOnTargetP90  MetricKey = "shots_on_target_p90"
	MetricPassesP90         MetricKey = "passes_p90"
	MetricAccPassesP90      MetricKey = "accurate_passes_p90"
	MetricCrossesP90        MetricKey = "crosses_p90"
	MetricDribblesP90       MetricKey = "dribbles_p90"
	MetricDuelsP90          MetricKey = "duels_p90"
	MetricDuelsWonP90       MetricKey = "duels_won_p90"
	MetricLossesP90         MetricKey = "losses_p90"
	MetricOwnHalfLossesP90  MetricKey = "own_half_losses_p90"
	MetricRecoveriesP90     MetricKey = "recoveries_p90"
	MetricOppRecoveriesP90  MetricKey = "opp_half_recoveries_p90"
	MetricInterceptionsP90  MetricKey = "interceptions_p90"
	MetricClearancesP90     MetricKey = "clearances_p90"
	MetricKeyPassesP90      MetricKey = "key_passes_p90"
	MetricAerialWonP90      MetricKey = "aerial_duels_won_p90"
	MetricDefDuelsWonP90    MetricKey = "defensive_duels_won_p90"
	MetricPassAccuracy      MetricKey = "pass_accuracy"
	MetricShotAccuracy      MetricKey = "shot_accuracy"
	MetricCrossAccuracy     MetricKey = "cross_accuracy"
	MetricDribbleSuccess    MetricKey = "dribble_success"
	MetricDuelWinRate       MetricKey = "duel_win_rate"
	MetricDefDuelWinRate    MetricKey = "defensive_duel_win_rate"
	MetricAerialWinRate     MetricKey = "aerial_duel_win_rate"
	MetricActionSuccess     MetricKey = "action_success"
	MetricXGOverperformance MetricKey = "xg_overperformance"

	// Goalkeeper metric set.
	MetricSavesP90          MetricKey = "saves_p90"
	MetricConcededP90       MetricKey = "conceded_p90"
	MetricSavePct           MetricKey = "save_pct"
	MetricXCGPreventedP90   MetricKey = "xcg_prevented_p90"
	MetricKeeperPassAcc     MetricKey = "keeper_pass_accuracy"
	MetricKeeperPassesP90   MetricKey = "keeper_passes_p90"
	MetricExitsP90          MetricKey = "exits_p90"
	MetricReflexSavesP90    MetricKey = "reflex_saves_p90"
	MetricCardPenalty       MetricKey = "card_penalty"
	MetricNeutralFallback   MetricKey = "neutral"
	MetricKeeperConcededCap MetricKey = "conceded_capped_p90"
)

// Team statistic keys.
const (
	TeamXG                 TeamStatKey = "xg"
	TeamPossession         TeamStatKey = "possessionPct"
	TeamShots              TeamStatKey = "shots"
	TeamShotsOnTarget      TeamStatKey = "shotsOnTarget"
	TeamCorners            TeamStatKey = "corners"
	TeamFouls              TeamStatKey = "fouls"
	TeamFoulsSuffered      TeamStatKey = "foulsSuffered"
	TeamYellowCards        TeamStatKey = "yellowCards"
	TeamRedCards           TeamStatKey = "redCards"
	TeamPasses             TeamStatKey = "passes"
	TeamPassesAccurate     TeamStatKey = "passesAccurate"
	TeamLongPassPct        TeamStatKey = "longPassPct"
	TeamDuels              TeamStatKey = "duels"
	TeamDuelsWon           TeamStatKey = "duelsWon"
	TeamPPDA               TeamStatKey = "ppda"
	TeamAvgPossessionSecs  TeamStatKey = "avgPossessionSeconds"
	TeamPurePossessionSecs TeamStatKey = "purePossessionSeconds"
	TeamRecoveries         TeamStatKey = "recoveries"
)

// Functional roles.
const (
	RoleGoalkeeper Role = "goalkeeper"
	RoleCenterBack Role = "center_back"
	RoleFullback   Role = "fullback"
	RoleWingback   Role = "wingback"
	RoleMidfielder Role = "midfielder"
	RoleWinger     Role = "winger"
	RoleStriker    Role = "striker"
)

// Role groups.
const (
	GroupGoalkeeping RoleGroup = "goalkeeping"
	GroupDefense     RoleGroup = "defense"
	GroupMidfield    RoleGroup = "midfield"
	GroupAttack      RoleGroup = "attack"
)

// Match sides.
const (
	HomeSide    Side = "home"
	AwaySide    Side = "away"
	UnknownSide Side = ""
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllRoles lists roles in bucket order.
var AllRoles = []Role{RoleGoalkeeper, RoleCenterBack, RoleFullback, RoleWingback, RoleMidfielder, RoleWinger, RoleStriker}

// RoleGroups maps every role to its functional group.
var RoleGroups = map[Role]RoleGroup{
	RoleGoalkeeper: GroupGoalkeeping,
	RoleCenterBack: GroupDefense,
	RoleFullback:   GroupDefense,
	RoleWingback:   GroupDefense,
	RoleMidfielder: GroupMidfield,
	RoleWinger:     GroupAttack,
	RoleStriker:    GroupAttack,
}

// PositionGK is the goalkeeper position token.
const PositionGK = "GK"

// PositionRoles maps report position tokens to role buckets.
var PositionRoles = map[string]Role{
	PositionGK: RoleGoalkeeper,
	"CB":       RoleCenterBack,
	"LCB":      RoleCenterBack,
	"RCB":      RoleCenterBack,
	"DF":       RoleCenterBack,
	"LB":       RoleFullback,
	"RB":       RoleFullback,
	"LB5":      RoleFullback,
	"RB5":      RoleFullback,
	"LWB":      RoleWingback,
	"RWB":      RoleWingback,
	"DMF":      RoleMidfielder,
	"LDMF":     RoleMidfielder,
	"RDMF":     RoleMidfielder,
	"CMF":      RoleMidfielder,
	"LCMF":     RoleMidfielder,
	"RCMF":     RoleMidfielder,
	"AMF":      RoleMidfielder,
	"LAMF":     RoleWinger,
	"RAMF":     RoleWinger,
	"MF":       RoleMidfielder,
	"LW":       RoleWinger,
	"RW":       RoleWinger,
	"LWF":      RoleWinger,
	"RWF":      RoleWinger,
	"CF":       RoleStriker,
	"SS":       RoleStriker,
	"FW":       RoleStriker,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRoles lists all valid roles.
var ValidRoles = map[Role]struct{}{
	RoleGoalkeeper: {},
	RoleCenterBack: {},
	RoleFullback:   {},
	RoleWingback:   {},
	RoleMidfielder: {},
	RoleWinger:     {},
	RoleStriker:    {},
}
