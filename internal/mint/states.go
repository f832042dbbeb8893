package mint

import (
	"github.com/looplab/fsm"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/internal/metrics"
)

const (
	StateIdle                 = "idle"
	StateBuilding             = "building"
	StateAwaitingHash         = "awaiting_hash"
	StateSigning              = "signing"
	StateSubmitting           = "submitting"
	StateAwaitingConfirmation = "awaiting_confirmation"
	StateSettledSuccess       = "settled_success"
	StateSettledFailure       = "settled_failure"
)

const (
	eventBuild   = "build"
	eventHash    = "hash"
	eventSign    = "sign"
	eventSubmit  = "submit"
	eventConfirm = "confirm"
	eventSucceed = "succeed"
	eventFail    = "fail"
	eventReset   = "reset"
)

func newMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventBuild, Src: []string{StateIdle}, Dst: StateBuilding},
			{Name: eventHash, Src: []string{StateBuilding}, Dst: StateAwaitingHash},
			{Name: eventSign, Src: []string{StateAwaitingHash}, Dst: StateSigning},
			{Name: eventSubmit, Src: []string{StateSigning}, Dst: StateSubmitting},
			{Name: eventConfirm, Src: []string{StateSubmitting}, Dst: StateAwaitingConfirmation},
			{Name: eventSucceed, Src: []string{StateAwaitingConfirmation}, Dst: StateSettledSuccess},
			{
				Name: eventFail,
				Src: []string{
					StateBuilding,
					StateAwaitingHash,
					StateSigning,
					StateSubmitting,
					StateAwaitingConfirmation,
				},
				Dst: StateSettledFailure,
			},
			{Name: eventReset, Src: []string{StateSettledSuccess, StateSettledFailure}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				metrics.MintStateTransitions.WithLabelValues(e.Dst).Inc()
				attempt := ""
				if len(e.Args) > 0 {
					attempt, _ = e.Args[0].(string)
				}
				log.Info("mint state", "attempt", attempt, "from", e.Src, "to", e.Dst)
			},
		},
	)
}
