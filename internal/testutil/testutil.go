// Package testutil provides helpers shared by the registry test suites: a
// compact record factory and a scriptable fake owning process.
package testutil

import (
	"io"
	"time"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/provider"
)

// NewRecord builds a record from its raw parts. The component string is
// parsed strictly; tests pass literals, so a typo panics at the call site.
func NewRecord(authority, component string, singleton bool, ownerUID int) *provider.Record {
	return provider.New(authority, compid.MustParse(component), singleton, ownerUID)
}

// FakeProcess is a scriptable provider.Process. Output is streamed on a
// diagnostics request after an optional Delay; a non-nil Err is returned
// instead, simulating a transport failure.
type FakeProcess struct {
	Pid          int
	LiveEndpoint bool
	Output       string
	Err          error
	Delay        time.Duration
}

// PID implements provider.Process.
func (p *FakeProcess) PID() int { return p.Pid }

// Live implements provider.Process.
func (p *FakeProcess) Live() bool { return p.LiveEndpoint }

// DumpDiagnostics implements provider.Process.
func (p *FakeProcess) DumpDiagnostics(dst io.Writer) error {
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}
	if p.Err != nil {
		return p.Err
	}
	_, err := io.WriteString(dst, p.Output)
	return err
}
