package game

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/cards"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

type stubRand struct {
	ints   []int
	floats []float64
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 1.0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// playingSession builds a mid-game session without going through Join/Start
// so tests control positions and portals directly.
func playingSession(ids ...string) *models.Session {
	s := NewSession("TEST42", "", 0)
	for i, id := range ids {
		s.Players = append(s.Players, &models.Player{
			ID:       id,
			Name:     strings.ToUpper(id),
			Position: board.MinCell,
			IsHost:   i == 0,
			Cards:    []models.Card{},
		})
	}
	s.Status = models.StatusPlaying
	s.Portals = map[int]int{}
	return s
}

func TestJoinAssignsHostAndCapacity(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := NewSession("TEST42", "", 0)

	for i := 0; i < MaxPlayers; i++ {
		p, err := e.Join(s, "player", "🐸", false)
		if err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
		if (i == 0) != p.IsHost {
			t.Fatalf("join %d: IsHost = %v", i, p.IsHost)
		}
		if p.Position != board.MinCell {
			t.Fatalf("join %d: position %d", i, p.Position)
		}
	}
	if _, err := e.Join(s, "late", "🐸", false); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}

	s.Status = models.StatusPlaying
	if _, err := e.Join(s, "later", "🐸", false); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStartGuards(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(7)), nil)
	s := NewSession("TEST42", "", 0)
	host, _ := e.Join(s, "host", "🐸", false)

	if err := e.Start(s, host.ID); err != ErrNotEnoughPlayers {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	other, _ := e.Join(s, "other", "🦊", false)
	if err := e.Start(s, other.ID); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := e.Start(s, host.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Status != models.StatusPlaying || s.CurrentTurn != 0 {
		t.Fatalf("status %q turn %d after start", s.Status, s.CurrentTurn)
	}
	if len(s.Portals) == 0 {
		t.Fatal("no portals generated")
	}
	if err := e.Start(s, host.ID); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestRollGuards(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")

	if _, err := e.Roll(s, "p2"); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	s.Challenge = &models.Challenge{PlayerID: "p1"}
	if _, err := e.Roll(s, "p1"); err != ErrPendingInteraction {
		t.Fatalf("expected ErrPendingInteraction, got %v", err)
	}
	s.Challenge = nil

	s.Status = models.StatusWaiting
	if _, err := e.Roll(s, "p1"); err != ErrGameNotRunning {
		t.Fatalf("expected ErrGameNotRunning, got %v", err)
	}
}

func TestRollMovesAndAdvances(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{2}}, nil)
	s := playingSession("p1", "p2")

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if out.Roll != 3 {
		t.Fatalf("roll = %d, want 3", out.Roll)
	}
	if got := s.Players[0].Position; got != 4 {
		t.Fatalf("position = %d, want 4", got)
	}
	if s.LastRoll != 3 || s.LastMoverID != "p1" {
		t.Fatalf("lastRoll %d mover %q", s.LastRoll, s.LastMoverID)
	}
	if s.CurrentTurn != 1 || s.TurnCount != 1 {
		t.Fatalf("turn %d count %d after roll", s.CurrentTurn, s.TurnCount)
	}
}

func TestRollSkippedTurn(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].SkippedTurns = 1

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if !out.SkippedTurn {
		t.Fatal("expected skipped turn")
	}
	if s.Players[0].SkippedTurns != 0 {
		t.Fatalf("skippedTurns = %d", s.Players[0].SkippedTurns)
	}
	if s.LastRoll != 0 || s.LastMoverID != "" {
		t.Fatalf("lastRoll %d mover %q after skip", s.LastRoll, s.LastMoverID)
	}
	if s.CurrentTurn != 1 {
		t.Fatalf("turn %d, want 1", s.CurrentTurn)
	}
}

func TestRollDoubleDice(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{3}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].DoubleDice = true
	s.Players[0].Position = 1

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if out.Roll != 8 {
		t.Fatalf("roll = %d, want doubled 8", out.Roll)
	}
	if s.Players[0].DoubleDice {
		t.Fatal("double dice not consumed")
	}
	if got := s.Players[0].Position; got != 9 {
		t.Fatalf("position = %d, want 9", got)
	}
}

func TestRollWinsAtFinalCell(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{5}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 94

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if out.WinnerID != "p1" || s.WinnerID != "p1" {
		t.Fatalf("winner = %q / %q", out.WinnerID, s.WinnerID)
	}
	if s.Status != models.StatusFinished {
		t.Fatalf("status = %q", s.Status)
	}
}

func TestRollReflectsOffFinalCell(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{5}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 98

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if got := s.Players[0].Position; got != 96 {
		t.Fatalf("position = %d, want bounce to 96", got)
	}
	if s.Status != models.StatusPlaying {
		t.Fatalf("status = %q", s.Status)
	}
}

func TestExtraRollOnSixKeepsTurn(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{5}}, nil)
	s := playingSession("p1", "p2")
	s.Rules.ExtraRollOnSix = true
	s.Players[0].Position = 2

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if out.Roll != 6 {
		t.Fatalf("roll = %d, want 6", out.Roll)
	}
	if s.CurrentTurn != 0 {
		t.Fatalf("turn moved to %d after a six", s.CurrentTurn)
	}
}

func TestExtraTurnFlagKeepsTurn(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{1}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].ExtraTurn = true

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if s.CurrentTurn != 0 {
		t.Fatalf("turn moved to %d", s.CurrentTurn)
	}
	if s.Players[0].ExtraTurn {
		t.Fatal("extra turn not consumed")
	}
}

func TestRollChallengeCell(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{5}}, nil)
	s := playingSession("p1", "p2")
	// 1 + 6 lands on 7, a challenge cell

	out, err := e.Roll(s, "p1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if !out.ChallengeRequested {
		t.Fatal("expected challenge request")
	}
	ch := s.Challenge
	if ch == nil || ch.PlayerID != "p1" || !ch.Generating {
		t.Fatalf("challenge = %+v", ch)
	}
	if ch.Text != GeneratingPlaceholder {
		t.Fatalf("text = %q", ch.Text)
	}
	if s.CurrentTurn != 0 {
		t.Fatal("turn advanced with challenge pending")
	}

	e.ResolveGeneratedChallenge(s, challenge.Result{
		Text:    "Sing a verse",
		Penalty: models.Penalty{Type: models.PenaltySteps, Value: 3},
	})
	if s.Challenge.Generating || s.Challenge.Text != "Sing a verse" {
		t.Fatalf("challenge after resolve = %+v", s.Challenge)
	}

	if err := e.CompleteChallenge(s, "p1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if s.Challenge != nil || s.CurrentTurn != 1 {
		t.Fatalf("challenge %v turn %d after complete", s.Challenge, s.CurrentTurn)
	}
}

func TestResolveGeneratedChallengeAfterClearIsNoop(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")

	e.ResolveGeneratedChallenge(s, challenge.Result{Text: "stale"})
	if s.Challenge != nil {
		t.Fatalf("challenge = %+v", s.Challenge)
	}
}

func TestRollTreasureCell(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{4, 4}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 8
	// 8 + 5 lands on 13, a treasure cell; second int draws the shield card

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	tr := s.Treasure
	if tr == nil || tr.PlayerID != "p1" {
		t.Fatalf("treasure = %+v", tr)
	}
	if tr.Card.Effect != models.EffectShield {
		t.Fatalf("drew %q", tr.Card.Effect)
	}
	if len(s.Players[0].Cards) != 1 {
		t.Fatalf("hand size %d", len(s.Players[0].Cards))
	}
	if s.CurrentTurn != 0 {
		t.Fatal("turn advanced with treasure pending")
	}

	if err := e.DismissTreasure(s, "p2"); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := e.DismissTreasure(s, "p1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if s.Treasure != nil || s.CurrentTurn != 1 {
		t.Fatalf("treasure %v turn %d after dismiss", s.Treasure, s.CurrentTurn)
	}
}

func TestRollTreasureFullHand(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{4}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 8
	for i := 0; i < cards.HandLimit; i++ {
		s.Players[0].Cards = append(s.Players[0].Cards, cards.Catalog()[0])
	}

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if s.Treasure != nil {
		t.Fatal("treasure pending despite full hand")
	}
	if len(s.Players[0].Cards) != cards.HandLimit {
		t.Fatalf("hand size %d", len(s.Players[0].Cards))
	}
	if s.CurrentTurn != 1 {
		t.Fatalf("turn %d, want advanced", s.CurrentTurn)
	}
}

func TestRollShrineAndSelectRole(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{4}}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 20
	// 20 + 5 lands on the shrine at 25

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	rs := s.RoleSelection
	if rs == nil || rs.PlayerID != "p1" {
		t.Fatalf("role selection = %+v", rs)
	}
	if len(rs.Choices) != RoleChoiceCount {
		t.Fatalf("%d choices", len(rs.Choices))
	}
	seen := map[models.Role]bool{}
	for _, r := range rs.Choices {
		if seen[r] {
			t.Fatalf("duplicate role %q", r)
		}
		seen[r] = true
	}

	pick := rs.Choices[0]
	if err := e.SelectRole(s, "p1", pick); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.Players[0].Role != pick {
		t.Fatalf("role = %q, want %q", s.Players[0].Role, pick)
	}
	if s.RoleSelection != nil || s.CurrentTurn != 1 {
		t.Fatalf("selection %v turn %d", s.RoleSelection, s.CurrentTurn)
	}
}

func TestSelectRoleRejectsUnoffered(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.RoleSelection = &models.RoleSelection{
		PlayerID: "p1",
		Choices:  []models.Role{models.RoleNinja, models.RoleJester, models.RoleBuilder},
	}

	if err := e.SelectRole(s, "p1", models.RoleMage); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if s.RoleSelection == nil {
		t.Fatal("selection cleared on invalid pick")
	}
}

func TestSelectMageGrantsCard(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{2}}, nil)
	s := playingSession("p1", "p2")
	s.RoleSelection = &models.RoleSelection{
		PlayerID: "p1",
		Choices:  []models.Role{models.RoleMage, models.RoleTank, models.RoleNinja},
	}

	if err := e.SelectRole(s, "p1", models.RoleMage); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(s.Players[0].Cards) != 1 {
		t.Fatalf("hand size %d, want the mage gift", len(s.Players[0].Cards))
	}
}

func TestFailChallengeStepsPenalty(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 10
	s.Challenge = &models.Challenge{
		PlayerID: "p1",
		Text:     "Do a dance",
		Penalty:  models.Penalty{Type: models.PenaltySteps, Value: 3},
	}

	if err := e.FailChallenge(s, "p1"); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if got := s.Players[0].Position; got != 7 {
		t.Fatalf("position = %d, want 7", got)
	}
	if s.Players[0].GiveUpCount != 1 {
		t.Fatalf("giveUpCount = %d", s.Players[0].GiveUpCount)
	}
	if s.Challenge != nil || s.CurrentTurn != 1 {
		t.Fatalf("challenge %v turn %d", s.Challenge, s.CurrentTurn)
	}
}

func TestFailChallengeSkipTurnPenalty(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Challenge = &models.Challenge{
		PlayerID: "p1",
		Text:     "Do a dance",
		Penalty:  models.Penalty{Type: models.PenaltySkipTurn, Value: 1},
	}

	if err := e.FailChallenge(s, "p1"); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if s.Players[0].SkippedTurns != 1 {
		t.Fatalf("skippedTurns = %d", s.Players[0].SkippedTurns)
	}
	if s.Players[0].Position != 1 {
		t.Fatalf("position moved to %d", s.Players[0].Position)
	}
}

func TestFailChallengeGiveUpCap(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].GiveUpCount = GiveUpCap
	s.Challenge = &models.Challenge{
		PlayerID: "p1",
		Penalty:  models.Penalty{Type: models.PenaltySteps, Value: 3},
	}

	if err := e.FailChallenge(s, "p1"); err != ErrGiveUpCapReached {
		t.Fatalf("expected ErrGiveUpCapReached, got %v", err)
	}
	if s.Challenge == nil {
		t.Fatal("challenge cleared at the cap")
	}
}

func TestSkipChallengeWithCard(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	shield := cards.Catalog()[4]
	curse := cards.Catalog()[0]
	s.Players[0].Cards = []models.Card{curse, shield}
	s.Challenge = &models.Challenge{
		PlayerID: "p1",
		Penalty:  models.Penalty{Type: models.PenaltySteps, Value: 3},
	}

	if err := e.SkipChallengeWithCard(s, "p1", 0); err != ErrInvalidCard {
		t.Fatalf("expected ErrInvalidCard for non-shield, got %v", err)
	}
	if err := e.SkipChallengeWithCard(s, "p1", 1); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if len(s.Players[0].Cards) != 1 || s.Players[0].Cards[0].Effect != models.EffectCurseBack {
		t.Fatalf("hand = %+v", s.Players[0].Cards)
	}
	if s.Challenge != nil || s.CurrentTurn != 1 {
		t.Fatalf("challenge %v turn %d", s.Challenge, s.CurrentTurn)
	}
}

func TestPlayCardValidation(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Cards = []models.Card{cards.Catalog()[0]} // hostile, needs target

	if err := e.PlayCard(s, "p1", 3, ""); err != ErrInvalidCard {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if err := e.PlayCard(s, "p1", 0, ""); err != ErrInvalidTarget {
		t.Fatalf("expected ErrInvalidTarget without target, got %v", err)
	}
	if err := e.PlayCard(s, "p1", 0, "p1"); err != ErrInvalidTarget {
		t.Fatalf("expected ErrInvalidTarget on self, got %v", err)
	}
	if err := e.PlayCard(s, "p1", 0, "ghost"); err != ErrInvalidTarget {
		t.Fatalf("expected ErrInvalidTarget for unknown, got %v", err)
	}
	if len(s.Players[0].Cards) != 1 {
		t.Fatal("card consumed by a rejected play")
	}
}

func TestPlayCardSwap(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 10
	s.Players[1].Position = 50
	s.Players[0].Cards = []models.Card{cards.Catalog()[6]}

	if err := e.PlayCard(s, "p1", 0, "p2"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.Players[0].Position != 50 || s.Players[1].Position != 10 {
		t.Fatalf("positions %d / %d after swap", s.Players[0].Position, s.Players[1].Position)
	}
	if len(s.Players[0].Cards) != 0 {
		t.Fatal("card not consumed")
	}
	fx := s.ActiveCardEffect
	if fx == nil || fx.Effect != models.EffectSwapPosition || fx.CasterID != "p1" || fx.TargetID != "p2" {
		t.Fatalf("effect = %+v", fx)
	}
}

func TestPlayCardCanWin(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	s.Players[0].Position = 95
	s.Players[0].Cards = []models.Card{cards.Catalog()[3]} // teleport +5

	if err := e.PlayCard(s, "p1", 0, ""); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.WinnerID != "p1" || s.Status != models.StatusFinished {
		t.Fatalf("winner %q status %q", s.WinnerID, s.Status)
	}
}

func TestPlayCardClearsRollAttribution(t *testing.T) {
	e := NewEngine(&stubRand{ints: []int{2}}, nil)
	s := playingSession("p1", "p2")

	if _, err := e.Roll(s, "p1"); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if s.LastRoll != 3 || s.LastMoverID != "p1" {
		t.Fatalf("lastRoll %d mover %q", s.LastRoll, s.LastMoverID)
	}

	s.Players[0].Cards = []models.Card{cards.Catalog()[3]} // teleport
	if err := e.PlayCard(s, "p1", 0, ""); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.LastRoll != 0 || s.LastMoverID != "" {
		t.Fatalf("lastRoll %d mover %q after a card move", s.LastRoll, s.LastMoverID)
	}
}

func TestLeaveTransfersHostAndFixesTurn(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2", "p3")
	s.CurrentTurn = 2

	if err := e.Leave(s, "p1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(s.Players) != 2 {
		t.Fatalf("%d players left", len(s.Players))
	}
	if !s.Players[0].IsHost || s.Players[0].ID != "p2" {
		t.Fatalf("host = %+v", s.Players[0])
	}
	if cur := s.CurrentPlayer(); cur == nil || cur.ID != "p3" {
		t.Fatalf("current player = %+v", cur)
	}
}

func TestLeaveDownToOneForcesWin(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")

	if err := e.Leave(s, "p2"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if s.WinnerID != "p1" || s.Status != models.StatusFinished {
		t.Fatalf("winner %q status %q", s.WinnerID, s.Status)
	}
}

func TestLeaveClearsLeaverPending(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2", "p3")
	s.Challenge = &models.Challenge{PlayerID: "p1"}

	if err := e.Leave(s, "p1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if s.Challenge != nil {
		t.Fatal("leaver's challenge still pending")
	}
}

func TestKickGuards(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2", "p3")

	if err := e.Kick(s, "p2", "p3"); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := e.Kick(s, "p1", "p1"); err != ErrInvalidTarget {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if err := e.Kick(s, "p1", "p2"); err != nil {
		t.Fatalf("kick: %v", err)
	}
	if s.FindPlayer("p2") != nil {
		t.Fatal("kicked player still present")
	}
}

func TestResetRestoresFreshGame(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(11)), nil)
	s := playingSession("p1", "p2")
	p := s.Players[0]
	p.Position = 60
	p.Role = models.RoleNinja
	p.Cards = []models.Card{cards.Catalog()[0]}
	p.HasShield = true
	p.SkippedTurns = 2
	p.GiveUpCount = 1
	s.Status = models.StatusFinished
	s.WinnerID = "p1"
	s.Challenge = &models.Challenge{PlayerID: "p2"}
	s.CurrentTurn = 1
	s.TurnCount = 40

	if err := e.Reset(s, "p1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p.Position != board.MinCell || p.Role != models.RoleNone || len(p.Cards) != 0 {
		t.Fatalf("player not reset: %+v", p)
	}
	if p.HasShield || p.SkippedTurns != 0 || p.GiveUpCount != 0 {
		t.Fatalf("flags not reset: %+v", p)
	}
	if s.Status != models.StatusPlaying || s.WinnerID != "" || s.Challenge != nil {
		t.Fatalf("session not reset: status %q winner %q", s.Status, s.WinnerID)
	}
	if s.CurrentTurn != 0 || s.TurnCount != 0 {
		t.Fatalf("turn %d count %d", s.CurrentTurn, s.TurnCount)
	}
	if len(s.Portals) == 0 {
		t.Fatal("no fresh portal map")
	}
}

func TestStakesFlow(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")

	if err := e.UpdateStakes(s, "p2", "loser buys pizza"); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := e.AcceptStakes(s, "p2"); err != ErrNoPendingInteraction {
		t.Fatalf("expected error accepting empty stakes, got %v", err)
	}

	if err := e.UpdateStakes(s, "p1", "loser buys pizza"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := e.AcceptStakes(s, "p2"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := e.AcceptStakes(s, "p2"); err != nil {
		t.Fatalf("re-accept: %v", err)
	}
	if len(s.StakesAcceptedBy) != 1 {
		t.Fatalf("acceptances = %v", s.StakesAcceptedBy)
	}

	// changing the stakes voids earlier acceptances
	if err := e.UpdateStakes(s, "p1", "loser does dishes"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(s.StakesAcceptedBy) != 0 {
		t.Fatalf("acceptances survived a change: %v", s.StakesAcceptedBy)
	}
}

func TestUpdateRulesOnlyWhileWaiting(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")

	if err := e.UpdateRules(s, "p1", models.Rules{ExtraRollOnSix: true}); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	s.Status = models.StatusWaiting
	if err := e.UpdateRules(s, "p2", models.Rules{ExtraRollOnSix: true}); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := e.UpdateRules(s, "p1", models.Rules{ExtraRollOnSix: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !s.Rules.ExtraRollOnSix {
		t.Fatal("rule not applied")
	}
}

func TestSay(t *testing.T) {
	e := NewEngine(&stubRand{}, nil)
	s := playingSession("p1", "p2")
	before := len(s.Chat)

	if err := e.Say(s, "p1", "   "); err != nil {
		t.Fatalf("say: %v", err)
	}
	if len(s.Chat) != before {
		t.Fatal("blank message recorded")
	}

	long := strings.Repeat("a", ChatMessageLimit+50)
	if err := e.Say(s, "p1", long); err != nil {
		t.Fatalf("say: %v", err)
	}
	last := s.Chat[len(s.Chat)-1]
	if len(last.Text) != ChatMessageLimit {
		t.Fatalf("message length %d", len(last.Text))
	}
	if last.PlayerID != "p1" || last.System {
		t.Fatalf("message = %+v", last)
	}

	// truncation lands on a rune boundary, not mid-emoji
	emoji := strings.Repeat("🐍", ChatMessageLimit+10)
	if err := e.Say(s, "p2", emoji); err != nil {
		t.Fatalf("say: %v", err)
	}
	last = s.Chat[len(s.Chat)-1]
	if !utf8.ValidString(last.Text) {
		t.Fatal("truncation split a rune")
	}
	if n := utf8.RuneCountInString(last.Text); n != ChatMessageLimit {
		t.Fatalf("rune count %d", n)
	}
}

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateRoomCode()
		if len(code) != RoomCodeLength {
			t.Fatalf("length %d", len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(RoomCodeChars, c) {
				t.Fatalf("unexpected character %q in %q", c, code)
			}
		}
	}
}
