package enclog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const srcState = `1,30000/30000,20000/20000,15000/15000,100/500,0/1000,0,0.5000,0.5000,1.00`
const bossState = `44,950000/1000000,0/0,0/0,0/500,0/1000,0,0.2000,0.3000,0.75`

func feed(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for i, line := range lines {
		_, err := s.ParseLine(i+1, line)
		require.NoError(t, err, "line %d: %s", i+1, line)
	}
}

func newPopulatedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	feed(t, s,
		`0,BEGIN_LOG,1700000000000,15,"EU Megaserver","en","9.2.5"`,
		`100,UNIT_ADDED,1,PLAYER,T,1,0,F,6,4,"Bob","@BobDisplay",123456789,50,3600,0,PLAYER_ALLY,T`,
		`150,UNIT_ADDED,44,MONSTER,F,0,87345,T,0,0,"Lord Warden Dusk","",0,50,160,0,HOSTILE,F`,
		`200,ABILITY_INFO,40465,"Scalding Rune","ability_mageguild_scalding_rune.dds",F,T`,
	)
	return s
}

func TestSessionMeta(t *testing.T) {
	s := newPopulatedSession(t)
	m := s.Meta()
	assert.Equal(t, int64(1700000000000), m.EpochMS)
	assert.Equal(t, 15, m.Version)
	assert.Equal(t, "EU Megaserver", m.Server)
}

func TestSessionStrictVersion(t *testing.T) {
	s := NewSession(WithStrictVersion(true))
	_, err := s.ParseLine(1, `0,BEGIN_LOG,1700000000000,14,"EU Megaserver"`)
	assert.ErrorIs(t, err, ErrVersionMismatch)

	// Default mode only warns.
	s = NewSession()
	_, err = s.ParseLine(1, `0,BEGIN_LOG,1700000000000,14,"EU Megaserver"`)
	assert.NoError(t, err)
}

func TestSessionResolvesIdentities(t *testing.T) {
	s := newPopulatedSession(t)

	idx, ok := s.UnitIndex(1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = s.UnitIndex(44)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	bi, ok := s.BuffIndex(40465)
	require.True(t, ok)
	assert.Equal(t, 0, bi)

	icon, ok := s.GetBuffIcon(40465)
	require.True(t, ok)
	assert.Equal(t, "ability_mageguild_scalding_rune", icon)
}

func TestSessionBuffIconFirstRegistrationWins(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s, `300,ABILITY_INFO,40465,"Scalding Rune","some_other_icon.dds",F,T`)

	icon, ok := s.GetBuffIcon(40465)
	require.True(t, ok)
	assert.Equal(t, "ability_mageguild_scalding_rune", icon)
}

func TestSessionFightLifecycle(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4255,BEGIN_COMBAT`,
		`4300,COMBAT_EVENT,DAMAGE,FIRE,-2,28279,0,3,40465,`+srcState+`,`+bossState,
		`12803,END_COMBAT`,
	)

	fights := s.Fights()
	require.Len(t, fights, 1)
	f := fights[0]
	assert.Equal(t, "Lord Warden Dusk", f.Name)
	assert.Equal(t, int64(8548), f.DurationMS())
	assert.Len(t, f.Players, 1)
	assert.Len(t, f.Monsters, 1)
	assert.Len(t, f.Events, 1)
}

func TestSessionFightNameSurvivesUnitRemoved(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4255,BEGIN_COMBAT`,
		`4300,COMBAT_EVENT,DAMAGE,FIRE,-2,28279,0,3,40465,`+srcState+`,`+bossState,
		`4400,UNIT_REMOVED,44`,
		`12803,END_COMBAT`,
	)

	fights := s.Fights()
	require.Len(t, fights, 1)
	assert.Equal(t, "Lord Warden Dusk", fights[0].Name)

	// The session mapping is gone even though the unit index survives.
	_, ok := s.UnitIndex(44)
	assert.False(t, ok)
	assert.Len(t, fights[0].Monsters, 1)
}

func TestSessionUnitChangedRenames(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s, `300,UNIT_CHANGED,44,MONSTER,F,0,87345,T,0,0,"Warden Ascendant","",0,50,160,0,HOSTILE,F`)

	idx, ok := s.UnitIndex(44)
	require.True(t, ok)
	assert.Equal(t, "Warden Ascendant", s.res.Unit(idx).Name)
}

func TestSessionPlayerInfoSnapshot(t *testing.T) {
	s := newPopulatedSession(t)

	_, ok := s.Equipment(1)
	assert.False(t, ok)

	feed(t, s, `6000,PLAYER_INFO,1,[142079],[1],`+
		`[[HEAD,94779,T,16,ARMOR_DIVINES,LEGENDARY,443,INVALID,T,16,LEGENDARY]],`+
		`[40465,45902],[61902]`)

	eq, ok := s.Equipment(1)
	require.True(t, ok)
	assert.Equal(t, []int64{142079}, eq.BuffIDs)
	assert.Equal(t, []int64{40465, 45902}, eq.FrontBar)
	require.Len(t, eq.Gear, 1)
	assert.Equal(t, int64(94779), eq.Gear[0].ItemID)

	// A later snapshot replaces the earlier one wholesale.
	feed(t, s, `9000,PLAYER_INFO,1,[],[],[],[61902],[40465]`)
	eq, ok = s.Equipment(1)
	require.True(t, ok)
	assert.Empty(t, eq.Gear)
	assert.Equal(t, []int64{61902}, eq.FrontBar)

	// PLAYER_INFO for a never-announced unit is dropped.
	feed(t, s, `9100,PLAYER_INFO,77,[],[],[],[],[]`)
	_, ok = s.Equipment(77)
	assert.False(t, ok)
}

func TestSessionWriteEncoded(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4255,BEGIN_COMBAT`,
		`4300,COMBAT_EVENT,DAMAGE,FIRE,-2,28279,0,3,40465,`+srcState+`,`+bossState,
		`12803,END_COMBAT`,
	)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], `U|1|1|"Bob"|"@BobDisplay"|"EU Megaserver"|6|4|3600|`), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `U|2|2|"Lord Warden Dusk"|`), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `B|1|40465|"Scalding Rune"|"ability_mageguild_scalding_rune"|`), lines[2])
	assert.Equal(t, `F|1|"Lord Warden Dusk"|4255|12803`, lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "4300|3|1|"), lines[4])

	// A second flush with nothing new is empty.
	var again strings.Builder
	require.NoError(t, s.WriteEncoded(&again))
	assert.Empty(t, again.String())
}

func TestSessionOpenFightDeferredToNextFlush(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s, `4255,BEGIN_COMBAT`)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	assert.NotContains(t, out.String(), "\nF|")

	feed(t, s, `12803,END_COMBAT`)
	var next strings.Builder
	require.NoError(t, s.WriteEncoded(&next))
	assert.Contains(t, next.String(), `F|1|`)
}

func TestSessionSelfTargetedDamage(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4300,COMBAT_EVENT,DAMAGE,GENERIC,-2,500,0,3,40465,`+srcState+`,*`,
	)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	eventLine := lastLine(out.String())
	parts := strings.Split(eventLine, "|")
	assert.Equal(t, "13", parts[1])
	// time, type, instance, damage type, hit, then one 13-field state block.
	assert.Len(t, parts, 5+13)
}

func TestSessionRepeatOccurrencesCarrySubIDs(t *testing.T) {
	s := newPopulatedSession(t)
	hit := `4300,COMBAT_EVENT,DAMAGE,FIRE,-2,100,0,3,40465,` + srcState + `,` + bossState
	feed(t, s, hit, hit, hit)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	events := lines[len(lines)-3:]

	assert.Equal(t, "1", strings.Split(events[0], "|")[2])
	assert.Equal(t, "1.1", strings.Split(events[1], "|")[2])
	assert.Equal(t, "1.2", strings.Split(events[2], "|")[2])
}

func TestSessionInterruptedCastTruncated(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4200,BEGIN_CAST,1500,F,12,40465,`+srcState+`,*`,
		`4250,END_CAST,INTERRUPTED,12,40465`,
	)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	eventLine := lastLine(out.String())
	parts := strings.Split(eventLine, "|")
	assert.Equal(t, "1", parts[1])
	assert.Equal(t, "50", parts[3])
}

func TestSessionCompletedCastKeepsDuration(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4200,BEGIN_CAST,1500,F,12,40465,`+srcState+`,*`,
		`5700,END_CAST,COMPLETED,12,40465`,
	)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	parts := strings.Split(lastLine(out.String()), "|")
	assert.Equal(t, "1500", parts[3])
}

func TestSessionHealthRegen(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s, `5000,HEALTH_REGEN,618,`+srcState)

	// The synthetic recovery buff is injected on first use.
	bi, ok := s.BuffIndex(999999999)
	require.True(t, ok)
	assert.Equal(t, 1, bi)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	parts := strings.Split(lastLine(out.String()), "|")
	assert.Equal(t, "8", parts[1])
	assert.Equal(t, "618", parts[3])
}

func TestSessionEffectChanged(t *testing.T) {
	s := newPopulatedSession(t)
	feed(t, s,
		`4400,EFFECT_CHANGED,GAINED,2,13,40465,`+srcState+`,`+bossState,
		`4900,EFFECT_CHANGED,FADED,0,13,40465,`+srcState+`,`+bossState,
	)

	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	events := lines[len(lines)-2:]

	gained := strings.Split(events[0], "|")
	assert.Equal(t, "6", gained[1])
	assert.Equal(t, "2", gained[3]) // stack count

	faded := strings.Split(events[1], "|")
	assert.Equal(t, "7", faded[1])
}

func TestSessionEventBeforeAbilityInfo(t *testing.T) {
	// A combat event naming an unannounced ability default-constructs the
	// buff, pulling the display name from bundled reference data.
	s := NewSession()
	feed(t, s,
		`0,BEGIN_LOG,1700000000000,15,"EU Megaserver"`,
		`4300,COMBAT_EVENT,HEAL,MAGIC,0,5000,0,4,999999999,`+srcState+`,*`,
	)

	bi, ok := s.BuffIndex(999999999)
	require.True(t, ok)
	assert.Equal(t, 0, bi)
}

func TestSessionMalformedLinesAreSkipped(t *testing.T) {
	s := newPopulatedSession(t)
	_, err := s.ParseLine(99, "0,UNIT_ADDED")
	assert.Error(t, err)

	st := s.Stats()
	assert.Equal(t, 1, st.Malformed)

	// The stream continues normally afterwards.
	feed(t, s, `4255,BEGIN_COMBAT`)
}

func TestSessionClose(t *testing.T) {
	s := newPopulatedSession(t)
	s.Close()

	_, err := s.ParseLine(50, `4255,BEGIN_COMBAT`)
	assert.ErrorIs(t, err, ErrSessionClosed)

	// Accumulated state still flushes.
	var out strings.Builder
	require.NoError(t, s.WriteEncoded(&out))
	assert.NotEmpty(t, out.String())
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}
