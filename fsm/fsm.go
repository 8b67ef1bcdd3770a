// Package fsm implements C5, the Consensus FSM: the states and events of
// spec.md §4.3, a single-threaded strand that serializes all transitions
// and all writes to perround.Data, and a transition table dispatcher
// parameterized by config.VotingProfile (§9 redesign: SingleBlockProfile
// runs the §4.3 single-block-per-round table; TwoPhaseProfile additionally
// routes BlockWaiting through Prevote/Precommit before Commit).
//
// Grounded on the teacher's core.mainEventLoop (consensus/tendermint/
// core/handler.go): one goroutine draining a channel, a stopped signal
// fanned in on shutdown, and ctx.Done() as the cancellation source. The
// transition table itself replaces the teacher's ad hoc switch in
// handleCurrentRoundMessage/handleFutureRoundMessage with the explicit
// hand-written match (state, event) table spec.md §10 names as the
// preferred redesign over a generated state-machine DSL.
package fsm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/finalitychain/fastfinality/config"
)

// State is one of the named FSM states of spec.md §4.3.
type State uint8

const (
	InitialState State = iota
	LocalChainCheck
	InvalidLocalChain // terminal-error
	BlocksDownloading
	RoundDetection
	ConnectionChecking
	BlockProducerSelection // CommitteeSelection in the 4-phase variant
	BlockGeneration
	BlockWaiting // ProposalWaiting in the 4-phase variant
	Prevote
	Precommit
	Commit
	OnHold
	StopWaiting // terminal
)

func (s State) String() string {
	switch s {
	case InitialState:
		return "InitialState"
	case LocalChainCheck:
		return "LocalChainCheck"
	case InvalidLocalChain:
		return "InvalidLocalChain"
	case BlocksDownloading:
		return "BlocksDownloading"
	case RoundDetection:
		return "RoundDetection"
	case ConnectionChecking:
		return "ConnectionChecking"
	case BlockProducerSelection:
		return "BlockProducerSelection"
	case BlockGeneration:
		return "BlockGeneration"
	case BlockWaiting:
		return "BlockWaiting"
	case Prevote:
		return "Prevote"
	case Precommit:
		return "Precommit"
	case Commit:
		return "Commit"
	case OnHold:
		return "OnHold"
	case StopWaiting:
		return "StopWaiting"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Event is one of the named transition triggers of spec.md §4.3.
type Event uint8

const (
	StartLocalChainCheck Event = iota
	NetworkHeightDetectionFailure
	NetworkHeightLessThanLocal
	NetworkHeightGreaterThanLocal
	NetworkHeightEqualToLocal
	NotRegisteredInBroadcastSystem
	DbrbProcessBanned
	DownloadBlocksSucceeded
	DownloadBlocksFailed
	RoundDetectionCompleted
	ConnectionNumberSufficient
	ConnectionNumberInsufficient
	GenerateBlockEvent
	WaitForBlockEvent
	BlockGenerationSucceeded
	BlockGenerationFailed
	BlockReceived
	UnexpectedBlockHeight
	BlockNotReceivedSyncTrue
	BlockNotReceivedSyncFalse
	PrevoteQuorumReached
	PrecommitQuorumReached
	PhaseTimeout
	CommitBlockSucceeded
	CommitBlockFailed
	Hold
	Stop
)

func (e Event) String() string {
	names := [...]string{
		"StartLocalChainCheck", "NetworkHeightDetectionFailure", "NetworkHeightLessThanLocal",
		"NetworkHeightGreaterThanLocal", "NetworkHeightEqualToLocal", "NotRegisteredInBroadcastSystem",
		"DbrbProcessBanned", "DownloadBlocksSucceeded", "DownloadBlocksFailed", "RoundDetectionCompleted",
		"ConnectionNumberSufficient", "ConnectionNumberInsufficient", "GenerateBlockEvent", "WaitForBlockEvent",
		"BlockGenerationSucceeded", "BlockGenerationFailed", "BlockReceived", "UnexpectedBlockHeight",
		"BlockNotReceivedSyncTrue", "BlockNotReceivedSyncFalse", "PrevoteQuorumReached", "PrecommitQuorumReached",
		"PhaseTimeout", "CommitBlockSucceeded", "CommitBlockFailed", "Hold", "Stop",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("Event(%d)", e)
}

// transitionKey is a (state, event) pair, the table's lookup key.
type transitionKey struct {
	state State
	event Event
}

// Transition names the next state and whether IncrementRound/ResetRound
// fires alongside it (spec.md §4.3 "Hold", "/ ResetRound" annotations).
type Transition struct {
	Next        State
	IncrementRound bool
	ResetRound     bool
}

// table builds the transition map for profile, per spec.md §4.3 (single
// block) and the §9 TwoPhaseProfile redesign (Prevote/Precommit inserted
// between BlockWaiting and Commit).
func table(profile config.VotingProfile) map[transitionKey]Transition {
	t := map[transitionKey]Transition{
		{InitialState, StartLocalChainCheck}: {Next: LocalChainCheck},

		{LocalChainCheck, NetworkHeightDetectionFailure}:  {Next: LocalChainCheck},
		{LocalChainCheck, NetworkHeightLessThanLocal}:      {Next: InvalidLocalChain, ResetRound: true},
		{LocalChainCheck, NetworkHeightGreaterThanLocal}:   {Next: BlocksDownloading},
		{LocalChainCheck, NetworkHeightEqualToLocal}:       {Next: RoundDetection},
		{LocalChainCheck, NotRegisteredInBroadcastSystem}:  {Next: LocalChainCheck},
		{LocalChainCheck, DbrbProcessBanned}:               {Next: LocalChainCheck},

		{BlocksDownloading, DownloadBlocksSucceeded}: {Next: LocalChainCheck},
		{BlocksDownloading, DownloadBlocksFailed}:    {Next: LocalChainCheck},

		{RoundDetection, RoundDetectionCompleted}: {Next: ConnectionChecking},

		{ConnectionChecking, ConnectionNumberSufficient}:   {Next: BlockProducerSelection},
		{ConnectionChecking, ConnectionNumberInsufficient}: {Next: LocalChainCheck},

		{BlockProducerSelection, GenerateBlockEvent}:             {Next: BlockGeneration},
		{BlockProducerSelection, WaitForBlockEvent}:               {Next: BlockWaiting},
		{BlockProducerSelection, NotRegisteredInBroadcastSystem}:  {Next: LocalChainCheck},
		{BlockProducerSelection, DbrbProcessBanned}:               {Next: LocalChainCheck},

		{BlockGeneration, BlockGenerationSucceeded}: {Next: BlockWaiting},
		{BlockGeneration, BlockGenerationFailed}:     {Next: BlockWaiting},

		{BlockWaiting, UnexpectedBlockHeight}:     {Next: LocalChainCheck},
		{BlockWaiting, BlockNotReceivedSyncTrue}:  {Next: LocalChainCheck},
		{BlockWaiting, BlockNotReceivedSyncFalse}: {Next: ConnectionChecking, IncrementRound: true},

		{Commit, CommitBlockSucceeded}: {Next: ConnectionChecking, ResetRound: true},
		{Commit, CommitBlockFailed}:    {Next: ConnectionChecking, IncrementRound: true},
		{Commit, Hold}:                 {Next: OnHold},
	}

	switch profile {
	case config.TwoPhaseProfile:
		// §9 redesign: BlockWaiting's terminal event is now "proposal
		// accepted" rather than straight to Commit; Prevote/Precommit
		// quorum gate Commit in between.
		t[transitionKey{BlockWaiting, BlockReceived}] = Transition{Next: Prevote}
		t[transitionKey{Prevote, PrevoteQuorumReached}] = Transition{Next: Precommit}
		t[transitionKey{Prevote, PhaseTimeout}] = Transition{Next: ConnectionChecking, IncrementRound: true}
		t[transitionKey{Precommit, PrecommitQuorumReached}] = Transition{Next: Commit}
		t[transitionKey{Precommit, PhaseTimeout}] = Transition{Next: ConnectionChecking, IncrementRound: true}
	default: // config.SingleBlockProfile
		t[transitionKey{BlockWaiting, BlockReceived}] = Transition{Next: Commit}
	}

	return t
}

// Action is invoked on entry to a state, on a goroutine of its own that
// dispatch starts (not on the FSM's strand). It returns the event to apply
// next, which dispatch posts back onto the strand; implementations live in
// package action and are
// wired in by the host (spec.md §4.3 "on_entry of each state posts its
// action").
type Action func(ctx context.Context) Event

// FSM dispatches (state, event) through the transition table of spec.md
// §4.3/§9, running every transition and on-entry action on a single Strand
// (spec.md §5 "One FSM strand... orders all FSM state transitions").
type FSM struct {
	mu      sync.Mutex
	state   State
	table   map[transitionKey]Transition
	actions map[State]Action

	strand *Strand
	logger log.Logger

	onIncrementRound func()
	onResetRound     func()
}

// New builds an FSM in InitialState for profile, with actions supplying
// the on-entry behavior for each state that has one (states with no
// registered action are pure routing states, e.g. InvalidLocalChain/
// StopWaiting).
func New(profile config.VotingProfile, actions map[State]Action, onIncrementRound, onResetRound func(), logger log.Logger) *FSM {
	if logger == nil {
		logger = log.New("module", "fsm")
	}
	return &FSM{
		state:            InitialState,
		table:            table(profile),
		actions:          actions,
		strand:           NewStrand(),
		logger:           logger,
		onIncrementRound: onIncrementRound,
		onResetRound:     onResetRound,
	}
}

// State returns the FSM's current state. Safe from any goroutine.
func (f *FSM) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Start posts the initial transition and runs the strand until ctx is
// cancelled or Stop fires, per spec.md §5's cancellation contract.
func (f *FSM) Start(ctx context.Context) {
	f.strand.Start(ctx)
	f.strand.Post(func() { f.dispatch(ctx, StartLocalChainCheck) })
}

// Post enqueues an externally observed event (e.g. from a message handler)
// onto the strand, preserving total ordering (spec.md §5 "events that
// arrive while an action is running are queued").
func (f *FSM) Post(ctx context.Context, e Event) {
	f.strand.Post(func() { f.dispatch(ctx, e) })
}

// Shutdown implements the §5 shutdown sequence: post a terminal Stop event,
// then stop the strand and wait for it to drain.
func (f *FSM) Shutdown(ctx context.Context) {
	f.strand.Post(func() { f.dispatch(ctx, Stop) })
	f.strand.Stop()
}

// dispatch runs on the strand goroutine only. It looks up the transition
// for (current state, event); an undefined (state, event) pair is silently
// absorbed (spec.md P1: "ignored by an absorber state, no silent state
// corruption" — logged at Debug, not Warn, since this is expected for
// states that ignore most events).
func (f *FSM) dispatch(ctx context.Context, e Event) {
	f.mu.Lock()
	current := f.state
	f.mu.Unlock()

	if e == Stop {
		f.mu.Lock()
		f.state = StopWaiting
		f.mu.Unlock()
		f.logger.Info("fsm stopped", "from", current)
		return
	}
	if current == StopWaiting || current == InvalidLocalChain {
		f.logger.Debug("fsm absorbing event in terminal state", "state", current, "event", e)
		return
	}

	tr, ok := f.table[transitionKey{current, e}]
	if !ok {
		f.logger.Debug("fsm absorbing undefined transition", "state", current, "event", e)
		return
	}

	if tr.IncrementRound && f.onIncrementRound != nil {
		f.onIncrementRound()
	}
	if tr.ResetRound && f.onResetRound != nil {
		f.onResetRound()
	}

	f.mu.Lock()
	f.state = tr.Next
	f.mu.Unlock()
	f.logger.Debug("fsm transitioned", "from", current, "event", e, "to", tr.Next)

	if action, ok := f.actions[tr.Next]; ok {
		// Run the on-entry action on a worker goroutine, not the strand
		// itself: actions may block on network I/O or timers (spec.md §5
		// "Background work... runs on worker pools... re-post onto the
		// FSM strand before they touch FSM state"). The strand stays free
		// to process other queued events while the action is in flight.
		go func() {
			next := action(ctx)
			f.strand.Post(func() { f.dispatch(ctx, next) })
		}()
	}
}
