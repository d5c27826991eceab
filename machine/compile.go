package machine

import (
	"go.uber.org/zap"

	"github.com/coregx/ematch/egraph"
	"github.com/coregx/ematch/pattern"
)

// Config configures compilation and execution of match programs.
type Config struct {
	// Logger receives compile results and match tracing at Debug level.
	// Defaults to a nop logger.
	Logger *zap.Logger

	// LinearScanCutoff is the class size at which the node searcher switches
	// from linear scan to sentinel binary search.
	// Defaults to DefaultLinearScanCutoff.
	LinearScanCutoff int
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		Logger:           zap.NewNop(),
		LinearScanCutoff: DefaultLinearScanCutoff,
	}
}

// workItem pairs a register with the pattern slot whose shape it must
// satisfy.
type workItem struct {
	reg  int
	slot int
}

// compiler translates one pattern into an instruction sequence. It keeps a
// worklist of (register, slot) obligations seeded with {r0 -> root} and a
// next-free-register counter starting past r0.
type compiler struct {
	pat *pattern.Pattern

	// queue is serviced front to back. The contract only requires that every
	// obligation is eventually serviced: reordering the worklist changes
	// which Bind executes first (and with it the search-cost distribution)
	// but never the match set. FIFO keeps compilation deterministic.
	queue []workItem

	// vars and varRegs record each variable's register at first sight, in
	// first-seen order. That order fixes the Yield register list and the
	// substitution layout.
	vars    []pattern.Var
	varRegs []int

	next int
	buf  []instruction
}

// Compile translates a pattern into an immutable Program using the default
// configuration.
func Compile(pat *pattern.Pattern) (*Program, error) {
	return CompileWithConfig(pat, DefaultConfig())
}

// CompileWithConfig is Compile with explicit configuration. Zero-value
// config fields are replaced by their defaults.
func CompileWithConfig(pat *pattern.Pattern, config Config) (*Program, error) {
	if pat == nil || pat.Len() == 0 {
		return nil, pattern.ErrMalformed
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.LinearScanCutoff == 0 {
		config.LinearScanCutoff = DefaultLinearScanCutoff
	}

	c := &compiler{
		pat:   pat,
		queue: []workItem{{reg: 0, slot: pat.Len() - 1}},
		next:  1,
	}
	c.run()

	prog := &Program{
		instrs: c.buf,
		vars:   c.vars,
		config: config,
	}
	config.Logger.Debug("compiled pattern",
		zap.String("pattern", pat.String()),
		zap.String("program", prog.String()))
	return prog, nil
}

func (c *compiler) run() {
	for len(c.queue) > 0 {
		item := c.queue[0]
		c.queue = c.queue[1:]
		slot := c.pat.Slot(item.slot)

		switch {
		case slot.Kind() == pattern.SlotVar:
			c.variable(slot.Var(), item.reg)
		case slot.Node().IsLeaf():
			// A childless template is a ground term; membership in the
			// class's node list decides it outright.
			c.emit(instruction{op: opCheck, src: item.reg, node: *slot.Node()})
		default:
			c.bind(slot.Node(), item.reg)
		}
	}

	regs := make([]int, len(c.varRegs))
	copy(regs, c.varRegs)
	c.emit(instruction{op: opYield, regs: regs})
}

// variable records the register of a first-seen variable; later sightings
// emit a Compare against it, forcing repeated variables onto one class.
func (c *compiler) variable(v pattern.Var, reg int) {
	for i, seen := range c.vars {
		if seen == v {
			c.emit(instruction{op: opCompare, src: c.varRegs[i], out: reg})
			return
		}
	}
	c.vars = append(c.vars, v)
	c.varRegs = append(c.varRegs, reg)
}

// bind emits a Bind over a fresh contiguous register range sized to the
// template's arity and enqueues one obligation per child slot.
func (c *compiler) bind(node *egraph.Node, reg int) {
	out := c.next
	c.emit(instruction{op: opBind, src: reg, node: *node, out: out})
	node.ForEachChild(func(i int, child egraph.ID) {
		c.queue = append(c.queue, workItem{reg: out + i, slot: int(child)})
	})
	c.next += node.Arity()
}

func (c *compiler) emit(in instruction) {
	c.buf = append(c.buf, in)
}
