package bootstrap

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/device"
	navoutadapter "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/adapter/out"
	navservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/service"
	navusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/usecase"
	scaleinadapter "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/adapter/in"
	scaleoutadapter "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/adapter/out"
	scaleservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/service"
	scaleusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/usecase"
	sessioninadapter "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/adapter/in"
	sessionoutadapter "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/adapter/out"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
	sessionservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/service"
	sessionusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/usecase"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/clock"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/config"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/id"
	uiapp "github.com/niksy79/smart-scale-for-meat-dryer/internal/ui/app"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/web"
)

// App wires the module graph once and hands out entry points for each
// front end: the CLI handlers, the device loop, and the web monitor.
type App struct {
	Config     config.Config
	SessionCLI sessioninadapter.CLIHandler
	ScaleCLI   scaleinadapter.CLIHandler
	Sessions   sessionin.Usecase
	Loop       *device.Loop
	Source     *scaleoutadapter.SimWeightSource
	Web        *web.Server
}

func New(cfg config.Config, log hclog.Logger) (*App, error) {
	clk := clock.NewUptime()
	ids := id.RandomHex{}
	nowMillis := device.MillisSince(time.Now())
	ctx := context.Background()

	store := sessionoutadapter.NewFileSessionStore(cfg.StatePath)
	projector, err := sessionoutadapter.NewSQLiteRecordProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record projector: %w", err)
	}
	engine := sessionservice.NewEngine(clk, ids, store, cfg.RecordCapacity, cfg.AutoAdvanceSecs, log)
	engine.Recover(ctx)
	sessionUC := sessionusecase.NewInteractor(engine, store, projector)

	source := scaleoutadapter.NewSimWeightSource()
	scaleSvc := scaleservice.NewScaleService(source, scaleoutadapter.NewFileSettingsStore(cfg.ScalePath), log)
	scaleSvc.Recover(ctx)
	scaleUC := scaleusecase.NewInteractor(scaleSvc)

	machine := navservice.NewMachine(
		navoutadapter.NewSessionControlAdapter(sessionUC),
		navoutadapter.NewScaleControlAdapter(scaleUC),
		cfg.DebounceMillis, cfg.HoldMillis, cfg.TargetLossPercent,
		log,
	)
	navUC := navusecase.NewInteractor(machine)
	navUC.Reset(ctx)

	loop := device.NewLoop(
		device.NewSimButtons(), navUC, sessionUC, scaleUC, engine, nowMillis,
		device.Config{WeightMillis: cfg.PollMillis, MessageMillis: cfg.MessageMillis},
		log,
	)

	return &App{
		Config:     cfg,
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		ScaleCLI:   scaleinadapter.NewCLIHandler(scaleUC),
		Sessions:   sessionUC,
		Loop:       loop,
		Source:     source,
		Web:        web.NewServer(cfg.ListenAddr, loop, sessionUC, nowMillis, log),
	}, nil
}

// RunTUI drives the loop and the web monitor in the background while the
// terminal front panel owns the screen.
func RunTUI(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = app.Loop.Run(ctx) }()
	go func() { _ = app.Web.Run(ctx) }()

	model := uiapp.NewModel(app.Loop, app.Source, app.Sessions)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunServe runs headless: the device loop plus the web monitor.
func RunServe(ctx context.Context, app *App) error {
	go func() { _ = app.Loop.Run(ctx) }()
	return app.Web.Run(ctx)
}
