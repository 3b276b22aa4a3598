package console

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poinet/profiler-backend-go/internal/service"
)

// Runner is the interactive prompt loop: it reads person ids, prints the
// profile as indented JSON, and keeps serving after per-request failures.
type Runner struct {
	svc    *service.ProfileService
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRunner creates a new console runner
func NewRunner(svc *service.ProfileService, in io.Reader, out, errOut io.Writer) *Runner {
	return &Runner{svc: svc, in: in, out: out, errOut: errOut}
}

// Run reads ids until EOF or an "exit" command.
func (r *Runner) Run() error {
	fmt.Fprintln(r.out, "== POI Profiler ==")
	fmt.Fprintln(r.out, "Enter person id (or 'exit'):")

	sc := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> id: ")
		if !sc.Scan() {
			return sc.Err()
		}
		id := strings.TrimSpace(sc.Text())
		if strings.EqualFold(id, "exit") {
			return nil
		}
		if id == "" {
			continue
		}

		profile, err := r.svc.BuildProfile(id)
		if errors.Is(err, service.ErrPersonNotFound) {
			fmt.Fprintln(r.out, `{ "error": "no result" }`)
			continue
		}
		if err != nil {
			fmt.Fprintln(r.errOut, "Error:", err)
			continue
		}

		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			fmt.Fprintln(r.errOut, "Error:", err)
			continue
		}
		fmt.Fprintln(r.out, string(data))
	}
}
