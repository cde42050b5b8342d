package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// gomponentComponent lets a gomponents node be rendered where templ expects
// a component, such as inside the base layout.
type gomponentComponent struct {
	node g.Node
}

func (a gomponentComponent) Render(ctx context.Context, w io.Writer) error {
	if a.node == nil {
		return nil
	}
	return a.node.Render(w)
}

// AdaptGomponentToTempl wraps node as a templ.Component.
func AdaptGomponentToTempl(node g.Node) templ.Component {
	return gomponentComponent{node: node}
}

// templNode lets a templ component be embedded in a gomponents tree. The
// component is rendered with the context it was adapted with.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (a templNode) Render(w io.Writer) error {
	return a.component.Render(a.ctx, w)
}

// AdaptTemplToGomponent wraps component as a gomponents node rendered with ctx.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) g.Node {
	return templNode{ctx: ctx, component: component}
}
