package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// pauseUI is the pause panel: current controller tuning plus resume, reload
// and respawn buttons.
type pauseUI struct {
	ui     *ebitenui.UI
	tuning *widget.Text
}

func newPauseUI(g *Game) *pauseUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	tuning := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	p := &pauseUI{tuning: tuning}

	resumeBtn := button("Resume", func() {
		g.paused = false
	})
	reloadBtn := button("Reload tuning", func() {
		if err := g.sim.retune(); err != nil {
			log.Printf("reload tuning: %v", err)
		}
		p.refresh(g.sim.world, g.sim.level.Player)
	})
	respawnBtn := button("Respawn", func() {
		if err := g.sim.respawn(); err != nil {
			log.Printf("respawn: %v", err)
		}
		g.paused = false
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(tuning)
	panel.AddChild(resumeBtn)
	panel.AddChild(reloadBtn)
	panel.AddChild(respawnBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	p.refresh(g.sim.world, g.sim.level.Player)
	return p
}

func (p *pauseUI) refresh(w *ecs.World, player ecs.Entity) {
	ctrl, ok := ecs.Get(w, player, component.ControllerComponent.Kind())
	if !ok {
		p.tuning.Label = "no controller"
		return
	}
	p.tuning.Label = fmt.Sprintf("ride %.0f  spring %.0f  damping %.0f  penetration %.0f",
		ctrl.RideHeight, ctrl.SpringStrength, ctrl.SpringDamping, ctrl.RayPenetration)
}
