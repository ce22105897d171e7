package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	titleColor   = color.New(color.FgYellow, color.Bold)
	hintColor    = color.New(color.FgHiBlack)
)

// titleGate suppresses section titles for actions the menu triggers
// programmatically right after arming: only once 200ms of (human) time
// has passed does a title print again.
type titleGate struct {
	armed time.Time
	now   func() time.Time
}

func newTitleGate(now func() time.Time) *titleGate {
	if now == nil {
		now = time.Now
	}
	return &titleGate{now: now}
}

func (g *titleGate) Arm() { g.armed = g.now() }

func (g *titleGate) Ready() bool {
	return g.now().Sub(g.armed) >= 200*time.Millisecond
}

// console bundles the output side shared by both role menus.
type console struct {
	out    io.Writer
	prompt Prompter
	loc    *Localization
	titles *titleGate
}

func (c *console) Message(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *console) Blank() {
	fmt.Fprintln(c.out)
}

func (c *console) Title(title string) {
	if !c.titles.Ready() {
		return
	}
	titleColor.Fprintf(c.out, "------  %s  ------\n", title)
}

func (c *console) Success(msg string) {
	successColor.Fprintln(c.out, msg)
}

func (c *console) Error(msg string) {
	errorColor.Fprintln(c.out, msg)
}

// CacheTrace prints the hit/miss notice the caches emit.
func (c *console) CacheTrace(hit bool) {
	fmt.Fprintln(c.out)
	if hit {
		hintColor.Fprintln(c.out, "Cache Hit")
	} else {
		hintColor.Fprintln(c.out, "Cache Miss")
	}
}
