package commands

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/chat"
	"github.com/hammamikhairi/kitchenpal/internal/config"
	"github.com/hammamikhairi/kitchenpal/internal/conversation"
	"github.com/hammamikhairi/kitchenpal/internal/display"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
	"github.com/hammamikhairi/kitchenpal/internal/notes"
	"github.com/hammamikhairi/kitchenpal/internal/speech"
	"github.com/hammamikhairi/kitchenpal/internal/storage"
	"github.com/hammamikhairi/kitchenpal/internal/timer"
)

// runInteractive wires every service and hands the terminal to the UI.
func runInteractive(cfg config.Config) error {
	// Direct logs to a file by default so the REPL stays clean.
	logOut, closeLog := openLog(cfg.LogFile)
	defer closeLog()

	// Third-party libraries (the whisper transcriber) log through the
	// standard log package; send that to the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.Level(), logOut)

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := timer.NewBoard(storage.NewMemoryTimerStore(log.Named("timers")), log)
	keeper := notes.NewKeeper(storage.NewMemoryNoteStore(log.Named("notes")), log)
	ui := display.NewUI(board, cfg.ThemeValue(), cfg.StartScreen())
	textNotifier := conversation.NewCLINotifier(log, ui.Printf)

	// With read-aloud available, timer alarms are spoken too.
	var notifier domain.Notifier = textNotifier
	mouth := buildSpeaker(ctx, cfg.Speech, log.Named("speech"))
	if mouth != nil {
		notifier = speech.NewSpeakingNotifier(textNotifier, mouth, log)
	}
	ear := buildListener(cfg.Speech, mouth, log.Named("stt"))

	supervisor := timer.New(board, notifier, log.Named("supervisor"),
		timer.WithNotifyCooldown(cfg.Timers.NotifyCooldown()),
		timer.WithMaxEscalation(cfg.Timers.MaxEscalation),
		timer.WithReminderInterval(cfg.Timers.ReminderInterval()),
		timer.WithAlmostDoneThreshold(cfg.Timers.AlmostDoneThreshold()),
		timer.WithWatcher(timer.WithPauseNudge(cfg.Timers.PauseNudgeAfter())),
	)
	supervisor.Start(ctx)
	defer supervisor.Stop()

	a := &app{
		parser: conversation.NewKeywordParser(log.Named("parser")),
		board:  board,
		keeper: keeper,
		chef:   buildChef(cfg.Chat, board, log.Named("chat")),
		voice:  speech.NewProvider(ear, mouth, log),
		mouth:  mouth,
		log:    log,
		ui:     ui,

		quitDelay: 300 * time.Millisecond,
	}

	ui.PrintBanner()
	fmt.Println()

	// App logic runs beside the UI; Bubble Tea owns the terminal.
	go func() {
		ui.WaitReady()
		a.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	return nil
}

// openLog opens the log destination. "stderr" logs to the console; an
// unusable file falls back to stderr with a warning.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

// buildSpeaker returns the read-aloud queue, or nil when speech is off or
// no audio device is available.
func buildSpeaker(ctx context.Context, sc config.SpeechConfig, log *logger.Logger) *speech.Speaker {
	if !sc.Ready() {
		if sc.Enabled {
			log.Info("read-aloud disabled: set %s and %s to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
		}
		return nil
	}

	tts := speech.NewAzureClient(sc.Key, sc.Region, log, speech.WithVoice(speech.VoiceFor(sc.Accent())))
	player, err := speech.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, read-aloud disabled: %v", err)
		return nil
	}

	mouth := speech.NewSpeaker(tts, player, log, speech.WithCacheSize(sc.CacheSize))
	mouth.Start(ctx)
	mouth.Prefetch(ctx, speech.ThinkingFillers()...)
	mouth.Prefetch(ctx, speech.ListeningFillers()...)
	log.Info("read-aloud enabled (voice=%s, region=%s)", tts.Voice().Name, sc.Region)
	return mouth
}

// buildListener returns push-to-talk input when the Whisper model is on disk.
func buildListener(sc config.SpeechConfig, mouth *speech.Speaker, log *logger.Logger) *speech.Listener {
	if !sc.Enabled {
		return nil
	}
	if _, err := os.Stat(sc.WhisperModel); err != nil {
		log.Info("voice input disabled: whisper model not found at %s", sc.WhisperModel)
		return nil
	}
	tempDir := filepath.Join(config.Dir(), "stt")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		log.Warn("voice input disabled: %v", err)
		return nil
	}
	log.Info("voice input enabled (bin=%s, model=%s, chunk=%s)", sc.WhisperBin, sc.WhisperModel, sc.RecordDuration())
	return speech.NewListener(sc.WhisperBin, sc.WhisperModel, log,
		speech.WithRecordDuration(sc.RecordDuration()),
		speech.WithTempDir(tempDir),
		speech.WithInterrupt(mouth),
	)
}

// buildChef creates the assistant. Without a key the chef still exists
// but answers with the apology line.
func buildChef(cc config.ChatConfig, board *timer.Board, log *logger.Logger) *chat.Chef {
	var completer domain.Completer
	if cc.Ready() {
		completer = chat.NewClient(cc.APIKey, log,
			chat.WithModel(cc.Model),
			chat.WithTemperature(cc.Temperature),
			chat.WithMaxTokens(cc.MaxTokens),
			chat.WithRateLimit(cc.PerMinute, 1),
		)
		log.Info("Chef Gemini enabled (model=%s)", cc.Model)
	} else if cc.Enabled {
		log.Info("Chef Gemini disabled: set %s to enable", config.EnvGeminiKey)
	}

	return chat.NewChef(completer, log,
		chat.WithMood(cc.MoodValue()),
		chat.WithContext(func(ctx context.Context) string { return timerContext(ctx, board) }),
	)
}

// timerContext tells the model which timers are on the clock.
func timerContext(ctx context.Context, board *timer.Board) string {
	timers, err := board.List(ctx)
	if err != nil {
		return ""
	}
	var parts []string
	for _, t := range timers {
		switch t.Status {
		case domain.TimerRunning:
			parts = append(parts, fmt.Sprintf("%s (%s left)", t.Name, timer.FormatClock(t.Remaining)))
		case domain.TimerFired:
			parts = append(parts, t.Name+" (done)")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "The user has these kitchen timers running: " + strings.Join(parts, ", ") + "."
}
