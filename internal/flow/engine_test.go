package flow

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/gridiron/internal/charts"
	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/dice"
	"github.com/vovakirdan/gridiron/internal/game"
	"github.com/vovakirdan/gridiron/internal/telemetry"
)

func uniformChart(cell string) *charts.Tables {
	row := make(map[string]string, len(charts.Defenses))
	for _, d := range charts.Defenses {
		row[d.Letter] = cell
	}
	return &charts.Tables{
		Decks: map[string]charts.Deck{"test": {"Dive": row}},
		Kinds: map[string]charts.PlayKind{"Dive": charts.KindRun},
	}
}

func engineFor(cell string, seed int64, humans ...game.Side) *Engine {
	return New(Options{Tables: uniformChart(cell), Stream: dice.New(seed), Humans: humans})
}

var dive = PlayInput{Call: CallPlay, Deck: "test", Play: "Dive", Defense: "Running"}

func at(side game.Side, ballOn, down, toGo, quarter, clock int) game.State {
	s := game.New(game.Home)
	s.Possession = side
	s.BallOn = ballOn
	s.Down = down
	s.ToGo = toGo
	s.Quarter = quarter
	s.Clock = clock
	return s
}

// kinds returns the events of interest in order, dropping narration and HUD snapshots.
func kinds(events []Event) []string {
	var out []string
	for _, ev := range events {
		switch ev.(type) {
		case LogEvent, HUDEvent:
			continue
		}
		out = append(out, reflect.TypeOf(ev).Name())
	}
	return out
}

func find[T Event](events []Event) (T, bool) {
	for _, ev := range events {
		if v, ok := ev.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func mustSnap(t *testing.T, e *Engine, s game.State, in PlayInput) Step {
	t.Helper()
	st, err := e.ResolveSnap(s, in)
	if err != nil {
		t.Fatalf("ResolveSnap: %v", err)
	}
	if err := CheckStep(s, st); err != nil {
		t.Fatalf("CheckStep: %v", err)
	}
	return st
}

func TestStart(t *testing.T) {
	e := engineFor("+3", 1000)
	st := e.Start(game.Home)

	if st.State.Quarter != 1 || st.State.Clock != 900 {
		t.Errorf("opening kickoff ran time: Q%d %d", st.State.Quarter, st.State.Clock)
	}
	ko, ok := find[KickoffEvent](st.Events)
	if !ok || ko.Kicker != game.Home {
		t.Fatalf("kickoff event = %+v, %v", ko, ok)
	}
	// d6 = 1: touchback.
	if st.State.Possession != game.Away || st.State.BallOn != 80 {
		t.Errorf("after touchback: %v", st.State)
	}
	if _, ok := st.Events[len(st.Events)-1].(HUDEvent); !ok {
		t.Error("step should end with a HUD snapshot")
	}
}

func TestHalfEndsWithSecondHalfKickoff(t *testing.T) {
	e := engineFor("+3", 42)
	s := at(game.Home, 50, 1, 10, 2, 30)
	s.OpeningKicker = game.Home

	st := mustSnap(t, e, s, dive)

	want := []string{"SnapEvent", "EndOfQuarterEvent", "HalftimeEvent", "KickoffEvent"}
	if got := kinds(st.Events); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	eoq, _ := find[EndOfQuarterEvent](st.Events)
	if eoq.Quarter != 2 {
		t.Errorf("end of quarter %d, want 2", eoq.Quarter)
	}
	ko, _ := find[KickoffEvent](st.Events)
	if ko.Kicker != game.Away {
		t.Errorf("second half kicked by %v, want Away", ko.Kicker)
	}
	if st.State.Quarter != 3 || st.State.Clock != 900 {
		t.Errorf("second half starts at Q%d %d, want Q3 900", st.State.Quarter, st.State.Clock)
	}
}

func TestTouchdownTryKickoff(t *testing.T) {
	e := engineFor("+20", 7)
	s := at(game.Home, 90, 1, 10, 1, 600)

	st := mustSnap(t, e, s, dive)
	got := kinds(st.Events)

	td, ok := find[ScoreEvent](st.Events)
	if !ok || td.Kind != ScoreTouchdown || td.Side != game.Home || td.Points != 6 {
		t.Fatalf("first score event = %+v", td)
	}
	try, ok := find[TryEvent](st.Events)
	if !ok || try.TwoPoint {
		t.Fatalf("try = %+v, %v", try, ok)
	}
	want := []string{"SnapEvent", "ScoreEvent", "TryEvent"}
	wantScore := 6
	if try.Good {
		want = append(want, "ScoreEvent")
		wantScore = 7
	}
	want = append(want, "KickoffEvent")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	ko, _ := find[KickoffEvent](st.Events)
	if ko.Kicker != game.Home {
		t.Errorf("scoring team should kick, got %v", ko.Kicker)
	}
	if st.State.Score.Home != wantScore || st.State.AwaitingPAT {
		t.Errorf("state after try: %+v", st.State)
	}
	// 30 for the play, nothing for the try, 15 for the kickoff.
	if st.State.Clock != 555 {
		t.Errorf("clock = %d, want 555", st.State.Clock)
	}

	var sawPending bool
	for _, ev := range st.Events {
		if h, ok := ev.(HUDEvent); ok && h.State.AwaitingPAT {
			sawPending = true
		}
	}
	if !sawPending {
		t.Error("no snapshot with the try pending")
	}
}

func TestPenaltyChoice(t *testing.T) {
	s := at(game.Home, 50, 1, 10, 1, 900)

	t.Run("human decides", func(t *testing.T) {
		e := engineFor("PENALTY +5", 3, game.Home)
		st := mustSnap(t, e, s, dive)

		if st.State != s {
			t.Fatalf("pending step changed the state: %v", st.State)
		}
		choice, ok := find[ChoiceRequiredEvent](st.Events)
		if !ok || choice.Decider != game.Home {
			t.Fatalf("choice = %+v, %v", choice, ok)
		}

		accepted, err := e.FinalizePenaltyDecision(choice.Pending, Accept)
		if err != nil {
			t.Fatal(err)
		}
		if accepted.State.BallOn != 55 || accepted.State.Down != 1 || accepted.State.ToGo != 10 {
			t.Errorf("accepted: %v", accepted.State)
		}
		declined, err := e.FinalizePenaltyDecision(choice.Pending, Decline)
		if err != nil {
			t.Fatal(err)
		}
		if declined.State.BallOn != 50 || declined.State.Down != 2 || declined.State.ToGo != 10 {
			t.Errorf("declined: %v", declined.State)
		}
	})

	t.Run("computer decides", func(t *testing.T) {
		e := engineFor("PENALTY +5", 3, game.Away)
		st := mustSnap(t, e, s, dive)
		if _, ok := find[ChoiceRequiredEvent](st.Events); ok {
			t.Fatal("offense is not human; no choice expected")
		}
		if st.State.BallOn != 55 || st.State.Clock != 885 {
			t.Errorf("state = %v", st.State)
		}
	})

	t.Run("declined on fourth down", func(t *testing.T) {
		e := engineFor("PENALTY -5", 3)
		fourth := at(game.Home, 50, 4, 2, 1, 900)
		st := mustSnap(t, e, fourth, dive)
		to, ok := find[TurnoverEvent](st.Events)
		if !ok || to.Kind != TurnoverOnDowns {
			t.Fatalf("turnover = %+v, %v", to, ok)
		}
		if st.State.Possession != game.Away || st.State.BallOn != 50 {
			t.Errorf("state = %v", st.State)
		}
	})
}

func TestUntimedDown(t *testing.T) {
	e := engineFor("PENALTY +5", 3)
	s := at(game.Home, 50, 1, 10, 2, 10)

	st := mustSnap(t, e, s, dive)
	if _, ok := find[UntimedDownScheduledEvent](st.Events); !ok {
		t.Fatalf("events = %v", kinds(st.Events))
	}
	if st.State.Quarter != 2 || st.State.Clock != 0 || !st.State.UntimedDown {
		t.Fatalf("state = %+v", st.State)
	}

	e.tables = uniformChart("+3")
	st = mustSnap(t, e, st.State, dive)
	if st.State.Quarter != 3 {
		t.Errorf("half did not end after the untimed down: %v", st.State)
	}
	if _, ok := find[HalftimeEvent](st.Events); !ok {
		t.Error("no halftime event")
	}
}

func TestTwoMinuteWarning(t *testing.T) {
	e := engineFor("+3", 3)
	s := at(game.Home, 50, 1, 10, 4, 130)

	st := mustSnap(t, e, s, dive)
	if st.State.Clock != 120 {
		t.Errorf("clock = %d, want 120", st.State.Clock)
	}
	w, ok := find[TwoMinuteWarningEvent](st.Events)
	if !ok || w.Quarter != 4 {
		t.Errorf("warning = %+v, %v", w, ok)
	}
}

func TestTurnoverOnDowns(t *testing.T) {
	e := engineFor("+1", 3)
	s := at(game.Home, 50, 4, 5, 1, 900)

	st := mustSnap(t, e, s, dive)
	to, ok := find[TurnoverEvent](st.Events)
	if !ok || to.Kind != TurnoverOnDowns || to.To != game.Away {
		t.Fatalf("turnover = %+v, %v", to, ok)
	}
	if st.State.Possession != game.Away || st.State.BallOn != 51 || st.State.Down != 1 || st.State.ToGo != 10 {
		t.Errorf("state = %v", st.State)
	}
}

func TestPunt(t *testing.T) {
	e := engineFor("+3", 2987)
	s := at(game.Home, 30, 4, 8, 1, 900)

	st := mustSnap(t, e, s, PlayInput{Call: CallPunt})
	p, ok := find[PuntEvent](st.Events)
	if !ok || !p.Result.FairCatch {
		t.Fatalf("punt = %+v, %v", p, ok)
	}
	if st.State.Possession != game.Away || st.State.BallOn != 70 || st.State.Clock != 885 {
		t.Errorf("state = %v", st.State)
	}
}

func TestFieldGoal(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e := engineFor("+3", seed*7919)
		s := at(game.Home, 75, 4, 3, 1, 900)
		st := mustSnap(t, e, s, PlayInput{Call: CallFieldGoal})

		fg, ok := find[FieldGoalEvent](st.Events)
		if !ok || fg.Result.Distance != 42 {
			t.Fatalf("field goal = %+v, %v", fg, ok)
		}
		if fg.Result.Good {
			if st.State.Score.Home != 3 {
				t.Errorf("seed %d: good kick scored %d", seed, st.State.Score.Home)
			}
			if ko, ok := find[KickoffEvent](st.Events); !ok || ko.Kicker != game.Home {
				t.Errorf("seed %d: no kickoff after the field goal", seed)
			}
			continue
		}
		if st.State.Score.Home != 0 || st.State.Possession != game.Away || st.State.BallOn != fg.Result.MissSpot {
			t.Errorf("seed %d: after a miss: %v", seed, st.State)
		}
	}
}

func TestOvertime(t *testing.T) {
	s := at(game.Home, 50, 1, 10, 4, 10)
	s.Score = game.Score{Home: 7, Away: 7}

	t.Run("tied at the end of regulation", func(t *testing.T) {
		st := mustSnap(t, engineFor("+3", 11), s, dive)
		want := []string{"SnapEvent", "EndOfQuarterEvent", "OvertimeEvent", "KickoffEvent"}
		if got := kinds(st.Events); !reflect.DeepEqual(got, want) {
			t.Fatalf("events = %v, want %v", got, want)
		}
		if st.State.Quarter != 5 || st.State.Clock != 600 || st.State.GameOver {
			t.Errorf("state = %+v", st.State)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.DefaultRules()
		cfg.Overtime.Enabled = false
		e := New(Options{Rules: cfg, Tables: uniformChart("+3"), Stream: dice.New(11)})
		st := mustSnap(t, e, s, dive)
		final, ok := find[FinalEvent](st.Events)
		if !ok || !final.Tie || !st.State.GameOver {
			t.Errorf("final = %+v, state = %+v", final, st.State)
		}
	})

	t.Run("sudden death", func(t *testing.T) {
		ot := at(game.Away, 5, 1, 5, 5, 400)
		ot.Score = game.Score{Home: 7, Away: 7}
		st := mustSnap(t, engineFor("+10", 11), ot, dive)

		want := []string{"SnapEvent", "ScoreEvent", "FinalEvent"}
		if got := kinds(st.Events); !reflect.DeepEqual(got, want) {
			t.Fatalf("events = %v, want %v", got, want)
		}
		final, _ := find[FinalEvent](st.Events)
		if final.Winner != game.Away || final.Tie || st.State.Score.Away != 13 {
			t.Errorf("final = %+v", final)
		}
	})
}

func TestGameOverAndUnknownCall(t *testing.T) {
	e := engineFor("+3", 1)
	over := at(game.Home, 50, 1, 10, 4, 0)
	over.GameOver = true
	if _, err := e.ResolveSnap(over, dive); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
	if _, err := e.FinalizePenaltyDecision(PendingPenalty{Pre: over}, Accept); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
	live := at(game.Home, 50, 1, 10, 1, 900)
	if _, err := e.ResolveSnap(live, PlayInput{Call: Call(9)}); !errors.Is(err, ErrUnknownCall) {
		t.Errorf("err = %v, want ErrUnknownCall", err)
	}
}

type recorder struct{ got []telemetry.Record }

func (r *recorder) Record(rec telemetry.Record) { r.got = append(r.got, rec) }

func TestTelemetry(t *testing.T) {
	rec := &recorder{}
	e := New(Options{Tables: uniformChart("+20"), Stream: dice.New(7), Hook: rec, GameID: "g"})
	mustSnap(t, e, at(game.Home, 90, 1, 10, 1, 600), dive)

	seen := map[telemetry.Kind]bool{}
	for i, r := range rec.got {
		seen[r.Kind] = true
		if r.GameID != "g" || r.Seq != uint64(i+1) {
			t.Errorf("record %d: game %q seq %d", i, r.GameID, r.Seq)
		}
	}
	for _, k := range []telemetry.Kind{telemetry.KindDice, telemetry.KindOutcome, telemetry.KindDelta, telemetry.KindScore} {
		if !seen[k] {
			t.Errorf("no %s record", k)
		}
	}
}

// playGame drives a whole game with randomly picked calls.
func playGame(t *testing.T, seed int64) (game.State, int) {
	t.Helper()
	tables, err := charts.Default()
	if err != nil {
		t.Fatal(err)
	}
	const deck = "pro_style"
	plays := tables.Plays(deck)
	e := New(Options{Tables: tables, Stream: dice.New(seed)})
	picker := dice.New(seed + 1)

	st := e.Start(game.Home)
	s := st.State
	events := len(st.Events)
	for n := 0; !s.GameOver; n++ {
		if n > 5000 {
			t.Fatalf("seed %d: game did not finish: %v", seed, s)
		}
		in := PlayInput{
			Call:    CallPlay,
			Deck:    deck,
			Play:    plays[picker.Roll(len(plays))-1],
			Defense: charts.LetterForNumber(picker.Roll(10)),
		}
		if s.Down == 4 {
			in.Call = CallPunt
			if s.YardsToGoal() <= 30 {
				in.Call = CallFieldGoal
			}
		}
		st := mustSnap(t, e, s, in)
		s = st.State
		events += len(st.Events)
	}
	return s, events
}

func TestWholeGame(t *testing.T) {
	for _, seed := range []int64{12345, 67890, 424242, 999331, 2024} {
		final, events := playGame(t, seed)
		if final.Quarter < 4 || !final.GameOver {
			t.Errorf("seed %d: final state %+v", seed, final)
		}
		if final.Quarter == 4 && final.Clock != 0 {
			t.Errorf("seed %d: regulation ended with %d left", seed, final.Clock)
		}

		again, againEvents := playGame(t, seed)
		if again != final || againEvents != events {
			t.Errorf("seed %d: replay differs: %+v vs %+v", seed, again, final)
		}
	}
}
