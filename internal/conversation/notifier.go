package conversation

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...any)

// CLINotifier prints timer notices to the terminal. Urgent ones are red.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc

	mu   sync.Mutex
	last string
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.remember(message)
	n.printFn("%s", noticeStyle.Render(message))
	return nil
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.remember(message)
	n.printFn("%s", urgentStyle.Render(message))
	return nil
}

// Last returns the most recent notification, unstyled.
func (n *CLINotifier) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *CLINotifier) remember(msg string) {
	n.mu.Lock()
	n.last = msg
	n.mu.Unlock()
}
