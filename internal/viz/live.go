package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/thermo"
)

const historyWindow = 400

type TickMsg time.Time

// Model replays a solved cooling trajectory sample by sample, with the
// pointwise heat flux and cooling rate alongside.
type Model struct {
	traj  *thermo.Trajectory
	flux  []float64
	rates []float64
	p     model.Params

	idx     int
	running bool
	fps     int
}

func NewModel(traj *thermo.Trajectory, flux, rates []float64, p model.Params, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		traj:    traj,
		flux:    flux,
		rates:   rates,
		p:       p,
		running: true,
		fps:     fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.running && m.idx < m.traj.Len()-1 {
			m.idx++
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.idx = 0
			m.running = true
		case "left":
			if m.idx > 0 {
				m.idx--
			}
		case "right":
			if m.idx < m.traj.Len()-1 {
				m.idx++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("radcool · radiative cooling"))
	b.WriteString("\n")

	lo := 0
	if m.idx+1 > historyWindow {
		lo = m.idx + 1 - historyWindow
	}
	graph := asciigraph.Plot(m.traj.Temps[lo:m.idx+1],
		asciigraph.Height(12),
		asciigraph.Width(70),
	)
	b.WriteString(graphStyle.Render(graph))
	b.WriteString("\n")

	cooled := (m.p.Initial - m.traj.Temps[m.idx]) / (m.p.Initial - m.p.Ambient) * 100

	stats := []string{
		statLine("time", fmt.Sprintf("%.0f s", m.traj.Times[m.idx])),
		statLine("temperature", fmt.Sprintf("%.2f K", m.traj.Temps[m.idx])),
		statLine("heat flux", fmt.Sprintf("%.2f W", m.flux[m.idx])),
		statLine("cooling rate", fmt.Sprintf("%.4f K/s", m.rates[m.idx])),
		statLine("cooled", fmt.Sprintf("%.1f %%", cooled)),
		statLine("emissivity", fmt.Sprintf("%.3f", m.p.Emissivity.At(m.traj.Temps[m.idx]))),
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))

	if !m.running {
		b.WriteString("\n" + pausedStyle.Render("paused"))
	}
	b.WriteString(helpStyle.Render("\nspace pause · ←/→ step · r restart · q quit"))

	return b.String()
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
