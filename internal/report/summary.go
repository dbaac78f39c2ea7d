package report

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/kubeprov/internal/k8s"
	"github.com/imamik/kubeprov/internal/kubeadm"
	"github.com/imamik/kubeprov/internal/manifest"
	"github.com/imamik/kubeprov/internal/plan"
	"github.com/imamik/kubeprov/internal/provisioning"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
	pending   = "[  ]"
)

type styles struct {
	section lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
	name    lipgloss.Style
}

func (r *Reporter) styles() styles {
	re := lipgloss.NewRenderer(r.out)
	return styles{
		section: re.NewStyle().Bold(true).Foreground(colorBlue).MarginTop(1),
		ok:      re.NewStyle().Foreground(colorGreen),
		failed:  re.NewStyle().Foreground(colorRed),
		warning: re.NewStyle().Foreground(colorYellow),
		dim:     re.NewStyle().Foreground(colorDim),
		name:    re.NewStyle().Width(24),
	}
}

// Summary writes the end-of-run report: one line per phase, best-effort
// failures, skipped phases and role-specific next steps.
func (r *Reporter) Summary(s *provisioning.Summary, opts plan.Options) {
	if s == nil {
		return
	}
	st := r.styles()

	r.println(st.section.Render(fmt.Sprintf("Summary: %s on %s", s.Role, s.Host)))

	for _, res := range s.Results {
		mark, style := checkMark, st.ok
		if res.Outcome == provisioning.Failed {
			mark, style = crossMark, st.failed
		} else if len(res.BestEffortFailures) > 0 {
			mark, style = warnMark, st.warning
		}
		r.println(fmt.Sprintf("  %s %s %s",
			style.Render(mark),
			st.name.Render(res.Phase.Name),
			st.dim.Render(res.Duration.Round(time.Second).String())))
	}
	for _, name := range s.Skipped {
		r.println(fmt.Sprintf("  %s %s %s", st.dim.Render(pending), st.name.Render(name), st.dim.Render("skipped")))
	}

	if failures := s.BestEffortFailures(); len(failures) > 0 {
		r.println("")
		for _, f := range failures {
			r.Warningf("%s: %s exited with status %d", f.Phase, f.Command, f.ExitCode)
		}
	}

	r.println("")
	if !s.Succeeded() {
		r.failureHint(s)
		return
	}

	r.Successf("%s provisioning completed in %s", s.Role, s.Duration.Round(time.Second))
	switch s.Role {
	case plan.RoleMaster:
		r.masterNextSteps(s, opts)
	case plan.RoleWorker:
		r.workerNextSteps(opts)
	case plan.RoleVerify:
		r.scanSamples(opts)
	}
}

func (r *Reporter) failureHint(s *provisioning.Summary) {
	r.Errorf("%v", s.Err)

	var cfe *provisioning.CommandFailedError
	if errors.As(s.Err, &cfe) && cfe.Phase == plan.PhaseClusterInitialization && kubeadm.IsAlreadyInitialized(cfe.Output) {
		r.Warningf("This host already runs a control plane. Run 'kubeadm reset -f' before provisioning it again.")
	}

	var ape *provisioning.ArtifactParseError
	if errors.As(s.Err, &ape) {
		r.Warningf("Cluster initialization output did not contain a join command; see the init log on the host.")
	}

	r.Infof("Nothing was rolled back. Fix the cause and re-run; completed phases are safe to repeat.")
}

func (r *Reporter) masterNextSteps(s *provisioning.Summary, opts plan.Options) {
	joinPath := opts.JoinCommandPath
	if joinPath == "" {
		joinPath = plan.DefaultOptions().JoinCommandPath
	}
	home := opts.OperatorHome()

	if join := s.JoinCommand(); join != "" {
		r.Infof("Join worker nodes by running this on each worker as root (saved to %s):", joinPath)
		r.println("")
		for _, line := range strings.Split(join, "\n") {
			r.println("  " + line)
		}
		r.println("")
		if oneLine := kubeadm.JoinCommandOneLine(join); oneLine != join {
			r.Infof("Or as a single line:")
			r.println("  " + oneLine)
			r.println("")
		}
	}

	r.Infof("Next steps:")
	r.println("  kubectl get nodes")
	r.println("  kubectl get pods -A")
	r.println("  kubectl apply -f " + path.Join(home, manifest.SamplePodFile))
	r.println("  " + manifest.SecurityScanPath + " cluster")
	r.println("  " + manifest.SecurityScanPath + " manifest " + path.Join(home, manifest.SamplePodFile))
}

func (r *Reporter) scanSamples(opts plan.Options) {
	r.Infof("Security scan samples:")
	r.println("  " + manifest.SecurityScanPath + " cluster")
	r.println("  " + manifest.SecurityScanPath + " manifest " + path.Join(opts.OperatorHome(), manifest.SamplePodFile))
}

func (r *Reporter) workerNextSteps(opts plan.Options) {
	joinPath := opts.JoinCommandPath
	if joinPath == "" {
		joinPath = plan.DefaultOptions().JoinCommandPath
	}
	r.Infof("The node is ready to join a cluster.")
	r.Infof("Run the join command from the master (saved there at %s) on this node as root.", joinPath)
}

// Health writes the result of an API-level cluster probe.
func (r *Reporter) Health(h *k8s.Health) {
	if h == nil {
		return
	}
	st := r.styles()

	title := "Cluster API"
	if h.ServerVersion != "" {
		title += " (" + h.ServerVersion + ")"
	}
	r.println(st.section.Render(title))

	for _, n := range h.Nodes {
		mark, style := checkMark, st.ok
		if !n.Ready {
			mark, style = crossMark, st.failed
		}
		role := "worker"
		if n.ControlPlane {
			role = "control-plane"
		}
		r.println(fmt.Sprintf("  %s %s %s", style.Render(mark), st.name.Render(n.Name),
			st.dim.Render(strings.Join(nonEmpty(role, n.KubeletVersion, n.InternalIP), "  "))))
	}
	for _, p := range h.SystemPods {
		mark, style := checkMark, st.ok
		if p.Phase != "Succeeded" && (p.Phase != "Running" || !p.Ready) {
			mark, style = crossMark, st.failed
		}
		r.println(fmt.Sprintf("  %s %s %s", style.Render(mark), p.Name,
			st.dim.Render(fmt.Sprintf("%s restarts=%d", p.Phase, p.Restarts))))
	}

	if h.Healthy() {
		r.Successf("All %d node(s) and %d kube-system pod(s) are ready", len(h.Nodes), len(h.SystemPods))
		return
	}
	r.Warningf("Not ready: %s", strings.Join(h.NotReady(), ", "))
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
