package playback

import (
	"github.com/younwookim/playbook/internal/domain/play"
)

func pt(x, y float64) play.Point { return play.Point{X: x, Y: y} }

// drain advances until the animator stops and returns the view after every
// applied step
func drain(a *Animator) []View {
	var views []View
	for {
		if _, ok := a.Advance(a.Run()); !ok {
			return views
		}
		views = append(views, a.View())
	}
}

func strokeSequence() play.ActionSequence {
	return play.ActionSequence{
		play.DrawStart(pt(10, 10)),
		play.DrawMove(pt(20, 20)),
		play.DrawEnd([]play.Point{pt(10, 10), pt(20, 20)}),
	}
}

func dragSequence() play.ActionSequence {
	return play.ActionSequence{
		play.PlayerDragPath(3, []play.PathPoint{
			{X: 300, Y: 40, Color: "green"},
			{X: 310, Y: 60, Color: "green"},
			{X: 320, Y: 80, Color: "green"},
		}),
		play.PlayerMove(3, 320, 80, "green"),
	}
}
