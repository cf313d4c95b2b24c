package main

import (
	"context"

	"charm-voting-tui/ballot"
	"charm-voting-tui/config"
	"charm-voting-tui/styles"
	"charm-voting-tui/voting"
	"charm-voting-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

type page int

const (
	pageBallot page = iota
	pageSettings
)

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage page

	cfg        config.Config
	configPath string

	// voting session; the controller owns the state, the model keeps the last snapshot
	ctx      context.Context
	cancel   context.CancelFunc
	ctrl     *voting.Controller
	approver *tuiApprover
	changes  *changeNotifier
	state    voting.State
	selected int

	// add-candidate input (owner only)
	adding     bool
	submitting bool
	input      textinput.Model

	// wallet approval prompt
	approval     *approvalPrompt
	approvalForm *huh.Form

	spin spinner.Model

	// clipboard feedback
	copiedMsg string

	// QR of the last transaction
	showQR bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel wires the voting controller to the configured wallet and contract
func newModel(cfg config.Config, configPath string) model {
	buf := &logBuffer{}
	logger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(log.DebugLevel)

	approver := newTUIApprover()
	changes := newChangeNotifier()

	ctrl := voting.New(voting.Options{
		Network: voting.Network{ChainID: cfg.ChainID, Name: cfg.ChainName},
		Discover: func(ctx context.Context) (voting.Provider, error) {
			p, err := wallet.Open(ctx, cfg, approver)
			if err != nil {
				return nil, err
			}
			logger.Debug("provider opened", "url", p.URL())
			return p, nil
		},
		Bind: func(signer *wallet.Signer) (voting.Contract, error) {
			b, err := ballot.Bind(cfg.Contract(), ballot.Descriptor, signer,
				ballot.WithConfirmTimeout(cfg.ConfirmTimeout()),
			)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		Logger:   logger.WithPrefix("voting"),
		OnChange: changes.notify,
	})

	// input for candidate name
	in := textinput.New()
	in.Placeholder = "Candidate name"
	in.Prompt = "New candidate: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 64
	in.Width = 48

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		activePage:  pageBallot,
		cfg:         cfg,
		configPath:  configPath,
		ctx:         ctx,
		cancel:      cancel,
		ctrl:        ctrl,
		approver:    approver,
		changes:     changes,
		state:       ctrl.State(),
		input:       in,
		spin:        sp,
		logEnabled:  cfg.Logger,
		logger:      logger,
		logBuffer:   buf,
		logViewport: vp,
		logSpinner:  logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		waitForChange(m.changes.ch),
		waitForApproval(m.approver.prompts),
	}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	return tea.Batch(cmds...)
}

// shutdown cancels in-flight work and releases the wallet
func (m *model) shutdown() tea.Cmd {
	if m.approval != nil {
		m.approval.reply <- approvalReply{err: errDeclined}
		m.approval = nil
	}
	m.cancel()
	m.ctrl.Close()
	return tea.Quit
}
