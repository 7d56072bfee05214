package host

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/app"
	"github.com/pleimann/padpaint/internal/input"
	"github.com/pleimann/padpaint/internal/logger"
)

// Indicator is implemented by sources that can show the paint colour on
// the pad itself.
type Indicator interface {
	SetIndicator(c color.Color)
}

// Game adapts the painter to ebiten's game loop: one Update is one tick.
type Game struct {
	ctx    context.Context
	app    *app.App
	source input.Source
	log    *zap.Logger
}

func NewGame(ctx context.Context, a *app.App, source input.Source, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{ctx: ctx, app: a, source: source, log: log}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.log.Debug("context done, closing window")
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.log.Info("escape pressed, closing window")
		return ebiten.Termination
	}

	g.app.Tick(g.source.Poll(), ebiten.ActualTPS())

	if ind, ok := g.source.(Indicator); ok {
		ind.SetIndicator(g.app.Color())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.app.Render().Pix)
}

// Layout keeps the logical screen at the frame size; ebiten scales it to
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.app.Size()
}

// Run opens the window and blocks until it is closed or ctx is done. It
// logs through the logger carried by ctx.
func Run(ctx context.Context, a *app.App, source input.Source, tps int) error {
	w, h := a.Size()
	ebiten.SetWindowTitle("padpaint")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}

	g := NewGame(ctx, a, source, logger.L(ctx).Named("host"))
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
