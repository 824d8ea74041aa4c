package countdown

import (
	"landing-countdown/countdown/domain"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Rótulos exibidos abaixo de cada unidade.
const (
	LabelDays    = "Dias"
	LabelHours   = "Horas"
	LabelMinutes = "Min"
	LabelSeconds = "Seg"
)

type WidgetOptions struct {
	ShowLabels bool
	Compact    bool
	Class      string
	// StreamURL vai em data-countdown-stream para o script da página assinar os ticks.
	StreamURL string
}

// Widget renderiza a contagem como quatro unidades separadas por ":".
func Widget(snap domain.Snapshot, opts WidgetOptions) g.Node {
	rem := snap.Remaining
	return h.Div(
		h.Class("countdown flex items-center justify-center gap-2 md:gap-4 "+opts.Class),
		g.Attr("data-countdown-state", snap.State.String()),
		g.If(!snap.Target.IsZero(), g.Attr("data-countdown-target", formatTarget(snap.Target))),
		g.If(opts.StreamURL != "", g.Attr("data-countdown-stream", opts.StreamURL)),

		timeUnit(rem.Days, LabelDays, opts),
		separator(),
		timeUnit(rem.Hours, LabelHours, opts),
		separator(),
		timeUnit(rem.Minutes, LabelMinutes, opts),
		separator(),
		timeUnit(rem.Seconds, LabelSeconds, opts),
	)
}

func timeUnit(value int, label string, opts WidgetOptions) g.Node {
	unitClass, valueClass := "countdown-unit", "countdown-value"
	if opts.Compact {
		unitClass += " p-2 min-w-[50px]"
		valueClass += " text-xl"
	}
	return h.Div(
		h.Class(unitClass),
		h.Span(h.Class(valueClass), g.Text(domain.Pad2(value))),
		g.If(opts.ShowLabels, h.Span(h.Class("countdown-label"), g.Text(label))),
	)
}

func separator() g.Node {
	return h.Span(h.Class("countdown-separator text-2xl font-bold mx-1 self-start mt-4"), g.Text(":"))
}
