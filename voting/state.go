package voting

import (
	"time"

	"charm-voting-tui/ballot"

	"github.com/ethereum/go-ethereum/common"
)

// Candidate is a named proposal and its vote count; its position in State.Candidates
// is its proposal index on the contract.
type Candidate = ballot.Candidate

// Operation is the session's outstanding operation
type Operation int

const (
	OpNone Operation = iota
	OpConnecting
	OpSynchronizing
	OpVoting
	OpSubmittingCandidate
)

func (o Operation) String() string {
	switch o {
	case OpConnecting:
		return "connecting"
	case OpSynchronizing:
		return "synchronizing"
	case OpVoting:
		return "voting"
	case OpSubmittingCandidate:
		return "submitting candidate"
	default:
		return "none"
	}
}

// Phase is the session's position in its lifecycle:
//
//	Disconnected → Connecting → Connected → Synchronizing → Synced
//	Synced → Voting | SubmittingCandidate → Synced
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseConnected
	PhaseSynchronizing
	PhaseSynced
	PhaseVoting
	PhaseSubmittingCandidate
)

func (p Phase) String() string {
	return [...]string{"disconnected", "connecting", "connected", "synchronizing", "synced", "voting", "submitting candidate"}[p]
}

// NoticeLevel grades a user notification
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is the latest message meant for the user
type Notice struct {
	Seq   uint64
	Level NoticeLevel
	Text  string
	At    time.Time
}

// State is a read-only snapshot of the session
type State struct {
	Account    common.Address
	Connected  bool
	ChainID    uint64
	Candidates []Candidate
	HasVoted   bool
	Winner     string
	HasWinner  bool
	IsOwner    bool
	Pending    Operation
	Phase      Phase
	LastSync   time.Time
	LastTx     common.Hash
	Notice     Notice
}

// session is the mutable aggregate; guarded by Controller.mu
type session struct {
	account   common.Address
	connected bool
	chainID   uint64
	contract  Contract
	epoch     uint64 // bumped on every successful connect

	candidates []Candidate
	hasVoted   bool
	winner     string
	hasWinner  bool
	isOwner    bool

	connecting bool
	syncing    int
	writing    Operation
	synced     bool

	lastSync time.Time
	lastTx   common.Hash
	notice   Notice
}

func (s *session) pending() Operation {
	switch {
	case s.writing != OpNone:
		return s.writing
	case s.connecting:
		return OpConnecting
	case s.syncing > 0:
		return OpSynchronizing
	default:
		return OpNone
	}
}

func (s *session) phase() Phase {
	switch {
	case s.writing == OpVoting:
		return PhaseVoting
	case s.writing == OpSubmittingCandidate:
		return PhaseSubmittingCandidate
	case s.connecting:
		return PhaseConnecting
	case !s.connected:
		return PhaseDisconnected
	case s.syncing > 0:
		return PhaseSynchronizing
	case s.synced:
		return PhaseSynced
	default:
		return PhaseConnected
	}
}

func (s *session) notify(level NoticeLevel, text string) {
	s.notice = Notice{Seq: s.notice.Seq + 1, Level: level, Text: text, At: time.Now()}
}

func (s *session) snapshot() State {
	candidates := make([]Candidate, len(s.candidates))
	copy(candidates, s.candidates)
	return State{
		Account:    s.account,
		Connected:  s.connected,
		ChainID:    s.chainID,
		Candidates: candidates,
		HasVoted:   s.hasVoted,
		Winner:     s.winner,
		HasWinner:  s.hasWinner,
		IsOwner:    s.isOwner,
		Pending:    s.pending(),
		Phase:      s.phase(),
		LastSync:   s.lastSync,
		LastTx:     s.lastTx,
		Notice:     s.notice,
	}
}
