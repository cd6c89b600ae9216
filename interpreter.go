// interpreter.go
//
// The execution machine. An Interp owns a value stack, an instruction
// queue, and a variable environment, and shares a read-only Language. A
// run pops queue entries one at a time: value variants are pushed onto
// the stack, control variants mutate stack/queue structure, and command
// variants dispatch into the language's command table, with iterator
// broadcasting applied per the command's declared argument behaviors.
//
// A run halts on the first error. The error's message is appended to the
// run's output buffer so interactive hosts can show it in-stream, and the
// error itself is returned for programmatic callers. A hard step cap
// guards against self-requeuing loops; there is no other preemption.
package fyfth

import (
	"strings"

	"github.com/edwingeng/deque"
)

// MaxSteps is the dispatch-count cap per Run call.
const MaxSteps = 100_000

// Interp is one interpreter instance. It is not safe for concurrent use;
// hosts that want speculative execution Clone it, run the clone, and swap
// it in on success.
type Interp struct {
	stack []Variant
	queue deque.Deque
	vars  map[string]Variant
	lang  *Language
}

// NewInterp builds an empty interpreter over lang.
func NewInterp(lang *Language) *Interp {
	return &Interp{
		queue: deque.NewDeque(),
		vars:  map[string]Variant{},
		lang:  lang,
	}
}

// Clone deep-copies the interpreter state. The language is shared.
func (it *Interp) Clone() *Interp {
	c := NewInterp(it.lang)
	c.stack = make([]Variant, len(it.stack))
	for i, v := range it.stack {
		c.stack[i] = v.Clone()
	}
	it.queue.Range(func(_ int, v deque.Elem) bool {
		c.queue.PushBack(v.(Variant).Clone())
		return true
	})
	for k, v := range it.vars {
		c.vars[k] = v.Clone()
	}
	return c
}

// Stack exposes the current stack, bottom first. The slice aliases the
// interpreter's state and must not be retained across runs.
func (it *Interp) Stack() []Variant { return it.stack }

// Var reads a variable from the environment.
func (it *Interp) Var(name string) (Variant, bool) {
	v, ok := it.vars[name]
	return v, ok
}

// SetVar writes a variable into the environment.
func (it *Interp) SetVar(name string, v Variant) { it.vars[name] = v }

// Lang returns the shared language.
func (it *Interp) Lang() *Language { return it.lang }

// QueueLen reports the number of pending queue entries.
func (it *Interp) QueueLen() int { return it.queue.Len() }

// Enqueue appends raw entries to the back of the queue.
func (it *Interp) Enqueue(vs ...Variant) {
	for _, v := range vs {
		it.queue.PushBack(v)
	}
}

// RunScript parses src onto the queue and drains it. The returned string
// is everything the run printed, error messages included.
func (it *Interp) RunScript(src string, world World) (string, error) {
	if err := it.Parse(src); err != nil {
		return err.Error() + "\n", err
	}
	return it.Run(world)
}

// Run drains the queue. On error the queue keeps its unexecuted tail and
// the stack keeps whatever state the failing entry left behind.
func (it *Interp) Run(world World) (string, error) {
	var out strings.Builder
	ctx := &Context{Out: &out, World: world, Vars: it.vars, Lang: it.lang}

	steps := 0
	for !it.queue.Empty() {
		if steps >= MaxSteps {
			err := &IterationLimitError{Steps: MaxSteps}
			out.WriteString(err.Error())
			out.WriteByte('\n')
			return out.String(), err
		}
		steps++

		v := it.queue.PopFront().(Variant)
		if err := it.step(ctx, v); err != nil {
			out.WriteString(err.Error())
			out.WriteByte('\n')
			return out.String(), err
		}
	}
	return out.String(), nil
}

func (it *Interp) step(ctx *Context, v Variant) error {
	if !v.IsControl() {
		it.stack = append(it.stack, v)
		return nil
	}

	switch v.Tag {
	case CTIter:
		collected := it.stack
		it.stack = []Variant{IterOf(collected)}
		return nil

	case CTMacro:
		return it.captureMacro()

	case CTLineEnd:
		return nil

	case CTQueue:
		top, err := it.pop("queue")
		if err != nil {
			return err
		}
		xs, ok := top.AsIter()
		if !ok {
			return typef("`queue` requires an iter on top of the stack, found %s", FormatType(top))
		}
		for i := len(xs) - 1; i >= 0; i-- {
			it.queue.PushFront(xs[i])
		}
		return nil

	case CTPush:
		top, err := it.pop("push")
		if err != nil {
			return err
		}
		xs, ok := top.AsIter()
		if !ok {
			return typef("`push` requires an iter on top of the stack, found %s", FormatType(top))
		}
		it.stack = append(it.stack, xs...)
		return nil

	case CTDup:
		// duplicating an empty stack is a no-op
		if n := len(it.stack); n > 0 {
			it.stack = append(it.stack, it.stack[n-1].Clone())
		}
		return nil

	case CTSwap:
		if len(it.stack) < 2 {
			return syntaxf("`swap` requires two values on the stack")
		}
		n := len(it.stack)
		it.stack[n-1], it.stack[n-2] = it.stack[n-2], it.stack[n-1]
		return nil

	case CTSwapN:
		top, err := it.pop("swap_n")
		if err != nil {
			return err
		}
		f, ok := top.AsNum()
		if !ok {
			return syntaxf("`swap_n` must follow a number")
		}
		n := int(f)
		if n < 0 || n+1 >= len(it.stack) {
			return domainf("not enough items on the stack to apply `swap_n`")
		}
		if n == 0 {
			return nil
		}
		hi := len(it.stack) - 1
		lo := hi - n
		it.stack[hi], it.stack[lo] = it.stack[lo], it.stack[hi]
		return nil

	case CTRotR:
		top, err := it.pop("rotr")
		if err != nil {
			return err
		}
		f, ok := top.AsNum()
		if !ok {
			return syntaxf("`rotr` must follow a number")
		}
		s := int(f)
		if s < 0 || s > len(it.stack) {
			return domainf("not enough items on the stack to apply `rotr`")
		}
		if s <= 1 {
			return nil
		}
		at := len(it.stack) - s
		val := it.stack[len(it.stack)-1]
		copy(it.stack[at+1:], it.stack[at:len(it.stack)-1])
		it.stack[at] = val
		return nil

	case CTRotL:
		top, err := it.pop("rotl")
		if err != nil {
			return err
		}
		f, ok := top.AsNum()
		if !ok {
			return syntaxf("`rotl` must follow a number")
		}
		s := int(f)
		if s < 0 || s > len(it.stack) {
			return domainf("not enough items on the stack to apply `rotl`")
		}
		if s <= 1 {
			return nil
		}
		at := len(it.stack) - s
		val := it.stack[at]
		copy(it.stack[at:], it.stack[at+1:])
		it.stack[len(it.stack)-1] = val
		return nil

	case CTCommand:
		return it.dispatch(ctx, v.Data.(int))

	default:
		return syntaxf("unknown control variant")
	}
}

// captureMacro reads the macro name off the queue front, then captures
// the depth-balanced span up to (not including) the matching `;` into the
// variable environment as an iter of raw, unexecuted entries.
func (it *Interp) captureMacro() error {
	if it.queue.Empty() {
		return syntaxf("`macro` requires a name")
	}
	name, ok := it.queue.PopFront().(Variant).AsLit()
	if !ok {
		return syntaxf("`macro` requires a literal name")
	}

	var body []Variant
	depth := 1
	for !it.queue.Empty() {
		next := it.queue.Front().(Variant)
		switch next.Tag {
		case CTMacro:
			depth++
		case CTLineEnd:
			depth--
		}
		if depth == 0 {
			// the balancing `;` stays behind and executes as a no-op
			break
		}
		it.queue.PopFront()
		body = append(body, next)
	}

	it.vars[name] = IterOf(body)
	return nil
}

// dispatch pops the command's arguments and invokes it, broadcasting over
// iter-valued MayIter arguments when any are present.
func (it *Interp) dispatch(ctx *Context, id int) error {
	if id < 0 || id >= len(it.lang.commands) {
		return syntaxf("command index %d is not registered", id)
	}
	cmd := it.lang.commands[id]
	arity := len(cmd.behaviors)

	if len(it.stack) < arity {
		return syntaxf("`%s` requires %d argument(s) but the stack holds %d",
			cmd.keyword, arity, len(it.stack))
	}

	// copy before truncating: later pushes reuse the backing array
	args := append([]Variant(nil), it.stack[len(it.stack)-arity:]...)
	it.stack = it.stack[:len(it.stack)-arity]

	broadcast := false
	length := -1
	for i, b := range cmd.behaviors {
		if b == MayIter && args[i].Tag == VTIter {
			broadcast = true
			n := len(args[i].Data.([]Variant))
			if length >= 0 && n != length {
				return domainf("`%s` cannot broadcast over iters of mismatched lengths %d and %d",
					cmd.keyword, length, n)
			}
			length = n
		}
	}

	if !broadcast {
		res, err := cmd.fn(ctx, args)
		if err != nil {
			return err
		}
		if res != nil {
			it.stack = append(it.stack, *res)
		}
		return nil
	}

	results := []Variant{}
	call := make([]Variant, arity)
	for idx := 0; idx < length; idx++ {
		for i, b := range cmd.behaviors {
			if b == MayIter && args[i].Tag == VTIter {
				call[i] = args[i].Data.([]Variant)[idx].Clone()
			} else {
				call[i] = args[i].Clone()
			}
		}
		res, err := cmd.fn(ctx, call)
		if err != nil {
			return err
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	it.stack = append(it.stack, IterOf(results))
	return nil
}

func (it *Interp) pop(word string) (Variant, error) {
	if len(it.stack) == 0 {
		return Nil, syntaxf("`%s` requires a value on the stack", word)
	}
	v := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	return v, nil
}
