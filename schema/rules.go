package schema

// MetricRule is one weighted benchmark used to grade an outfield role.
// Target holds the four curve breakpoints from worst to best; for inverted
// metrics the breakpoints are therefore descending.
type MetricRule struct {
	Key      MetricKey  `json:"key"`
	Weight   float64    `json:"weight"`
	Target   [4]float64 `json:"target"`
	Inverted bool       `json:"inverted,omitempty"`
	Gate     StatKey    `json:"gate,omitempty"` // rule is skipped when this count is zero
}

// Keeper blend components.
const (
	KeeperSavePct   MetricKey = MetricSavePct
	KeeperXCGDiff   MetricKey = MetricXCGPreventedP90
	KeeperConceded  MetricKey = MetricKeeperConcededCap
	KeeperMaxP90    float64   = 4.0 // conceded rate cap per 90
	KeeperAvgSave   float64   = 0.70
	KeeperSaveRange float64   = 0.30
)

// Card penalties applied on the 0-100 scale.
const (
	YellowCardPenalty = 5.0
	RedCardPenalty    = 25.0
)

// NeutralGrade is used when stats exist but no rule resolves.
const NeutralGrade = 50.0

// GetDefaultKeeperWeights returns the blend weights for the goalkeeper formula.
func GetDefaultKeeperWeights() map[MetricKey]float64 {
	return map[MetricKey]float64{
		KeeperSavePct:  0.5,
		KeeperXCGDiff:  0.3,
		KeeperConceded: 0.2,
	}
}

// Shared curves.
var (
	ownHalfLossesAttack = [4]float64{3, 2, 1, 0.3}
	passAccuracyDefault = [4]float64{0.6, 0.7, 0.8, 0.88}
	goalsP90Default     = [4]float64{0.1, 0.25, 0.5, 0.9}
	assistsP90Default   = [4]float64{0.1, 0.25, 0.45, 0.8}
	keyPassesP90Default = [4]float64{0.3, 0.8, 1.5, 2.5}
	crossAccDefault     = [4]float64{0.15, 0.25, 0.35, 0.5}
	recoveriesP90       = [4]float64{3, 5, 7, 10}
	duelWinDefault      = [4]float64{0.35, 0.45, 0.55, 0.65}
)

// GetDefaultRules returns the default rule list for an outfield role.
// Goalkeepers are graded by a separate formula and get no rule list.
func GetDefaultRules(role Role) []MetricRule {
	switch role {
	case RoleStriker:
		return []MetricRule{
			{Key: MetricGoalsP90, Weight: 0.20, Target: [4]float64{0.1, 0.3, 0.6, 1.0}, Gate: StatGoals},
			{Key: MetricXGP90, Weight: 0.15, Target: [4]float64{0.1, 0.25, 0.45, 0.8}},
			{Key: MetricShotAccuracy, Weight: 0.15, Target: [4]float64{0.2, 0.35, 0.5, 0.7}},
			{Key: MetricXGOverperformance, Weight: 0.10, Target: [4]float64{-0.2, 0, 0.3, 0.7}, Gate: StatGoals},
			{Key: MetricDuelWinRate, Weight: 0.10, Target: [4]float64{0.25, 0.35, 0.45, 0.6}},
			{Key: MetricPassAccuracy, Weight: 0.10, Target: [4]float64{0.55, 0.65, 0.75, 0.85}},
			{Key: MetricOwnHalfLossesP90, Weight: 0.10, Target: ownHalfLossesAttack, Inverted: true},
			{Key: MetricAssistsP90, Weight: 0.10, Target: assistsP90Default, Gate: StatAssists},
		}
	case RoleWinger:
		return []MetricRule{
			{Key: MetricDribbleSuccess, Weight: 0.15, Target: [4]float64{0.3, 0.45, 0.6, 0.75}},
			{Key: MetricDribblesP90, Weight: 0.10, Target: [4]float64{1, 2.5, 4, 6}},
			{Key: MetricCrossAccuracy, Weight: 0.10, Target: crossAccDefault},
			{Key: MetricKeyPassesP90, Weight: 0.10, Target: keyPassesP90Default},
			{Key: MetricXAP90, Weight: 0.10, Target: [4]float64{0.05, 0.12, 0.25, 0.4}},
			{Key: MetricGoalsP90, Weight: 0.10, Target: goalsP90Default, Gate: StatGoals},
			{Key: MetricAssistsP90, Weight: 0.10, Target: assistsP90Default, Gate: StatAssists},
			{Key: MetricShotAccuracy, Weight: 0.10, Target: [4]float64{0.2, 0.35, 0.5, 0.7}},
			{Key: MetricOwnHalfLossesP90, Weight: 0.15, Target: ownHalfLossesAttack, Inverted: true},
		}
	case RoleMidfielder:
		return []MetricRule{
			{Key: MetricPassAccuracy, Weight: 0.20, Target: [4]float64{0.65, 0.75, 0.83, 0.9}},
			{Key: MetricAccPassesP90, Weight: 0.15, Target: [4]float64{15, 30, 45, 65}},
			{Key: MetricOppRecoveriesP90, Weight: 0.10, Target: [4]float64{0.5, 1.5, 3, 5}},
			{Key: MetricRecoveriesP90, Weight: 0.10, Target: recoveriesP90},
			{Key: MetricDuelWinRate, Weight: 0.15, Target: duelWinDefault},
			{Key: MetricKeyPassesP90, Weight: 0.10, Target: keyPassesP90Default},
			{Key: MetricOwnHalfLossesP90, Weight: 0.10, Target: ownHalfLossesAttack, Inverted: true},
			{Key: MetricGoalsP90, Weight: 0.05, Target: goalsP90Default, Gate: StatGoals},
			{Key: MetricAssistsP90, Weight: 0.05, Target: assistsP90Default, Gate: StatAssists},
		}
	case RoleFullback:
		return []MetricRule{
			{Key: MetricPassAccuracy, Weight: 0.15, Target: passAccuracyDefault},
			{Key: MetricCrossAccuracy, Weight: 0.10, Target: crossAccDefault},
			{Key: MetricCrossesP90, Weight: 0.05, Target: [4]float64{0.5, 1.5, 3, 5}},
			{Key: MetricDefDuelWinRate, Weight: 0.20, Target: [4]float64{0.4, 0.5, 0.6, 0.72}},
			{Key: MetricInterceptionsP90, Weight: 0.10, Target: [4]float64{1, 2.5, 4, 6}},
			{Key: MetricRecoveriesP90, Weight: 0.10, Target: recoveriesP90},
			{Key: MetricOwnHalfLossesP90, Weight: 0.15, Target: [4]float64{2.5, 1.5, 0.8, 0.2}, Inverted: true},
			{Key: MetricDuelWinRate, Weight: 0.10, Target: duelWinDefault},
			{Key: MetricAssistsP90, Weight: 0.05, Target: assistsP90Default, Gate: StatAssists},
		}
	case RoleWingback:
		return []MetricRule{
			{Key: MetricCrossAccuracy, Weight: 0.15, Target: crossAccDefault},
			{Key: MetricCrossesP90, Weight: 0.10, Target: [4]float64{1, 2.5, 4, 6}},
			{Key: MetricDribbleSuccess, Weight: 0.10, Target: [4]float64{0.3, 0.45, 0.6, 0.75}},
			{Key: MetricDefDuelWinRate, Weight: 0.15, Target: [4]float64{0.4, 0.5, 0.6, 0.72}},
			{Key: MetricRecoveriesP90, Weight: 0.10, Target: recoveriesP90},
			{Key: MetricPassAccuracy, Weight: 0.10, Target: passAccuracyDefault},
			{Key: MetricOwnHalfLossesP90, Weight: 0.10, Target: [4]float64{2.5, 1.5, 0.8, 0.2}, Inverted: true},
			{Key: MetricXAP90, Weight: 0.10, Target: [4]float64{0.05, 0.12, 0.25, 0.4}},
			{Key: MetricAssistsP90, Weight: 0.10, Target: assistsP90Default, Gate: StatAssists},
		}
	case RoleCenterBack:
		return []MetricRule{
			{Key: MetricDefDuelWinRate, Weight: 0.20, Target: [4]float64{0.45, 0.55, 0.65, 0.78}},
			{Key: MetricAerialWinRate, Weight: 0.15, Target: [4]float64{0.35, 0.5, 0.62, 0.75}},
			{Key: MetricInterceptionsP90, Weight: 0.15, Target: [4]float64{1.5, 3, 4.5, 6.5}},
			{Key: MetricClearancesP90, Weight: 0.10, Target: [4]float64{1, 2.5, 4, 6}},
			{Key: MetricPassAccuracy, Weight: 0.15, Target: [4]float64{0.7, 0.8, 0.87, 0.93}},
			{Key: MetricOwnHalfLossesP90, Weight: 0.20, Target: [4]float64{2, 1.2, 0.6, 0.1}, Inverted: true},
			{Key: MetricGoalsP90, Weight: 0.05, Target: [4]float64{0.05, 0.1, 0.3, 0.6}, Gate: StatGoals},
		}
	default:
		return nil
	}
}

// MinimumMinutes returns the minutes a role needs before it is graded.
func MinimumMinutes(role Role, outfield, keeper int) int {
	if role == RoleGoalkeeper {
		return keeper
	}
	return outfield
}

// KeyStatWhitelist lists the fields shown as key stats per role.
var KeyStatWhitelist = map[Role][]StatKey{
	RoleGoalkeeper: {StatSaves, StatReflexSaves, StatConcededGoals, StatExits, StatPassesSuccess},
	RoleCenterBack: {StatClearances, StatInterceptions, StatAerialDuelsWon, StatDefDuelsWon, StatPassesSuccess, StatGoals},
	RoleFullback:   {StatCrossesSuccess, StatDefDuelsWon, StatInterceptions, StatRecoveries, StatAssists},
	RoleWingback:   {StatCrossesSuccess, StatDribblesSuccess, StatDefDuelsWon, StatRecoveries, StatAssists},
	RoleMidfielder: {StatPassesSuccess, StatKeyPasses, StatRecoveries, StatDuelsWon, StatGoals, StatAssists},
	RoleWinger:     {StatGoals, StatAssists, StatDribblesSuccess, StatKeyPasses, StatShotsOnTarget},
	RoleStriker:    {StatGoals, StatAssists, StatShotsOnTarget, StatXG, StatDuelsWon},
}
