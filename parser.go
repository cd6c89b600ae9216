// parser.go
//
// Word-to-queue translation. Each word becomes one or more queue entries
// according to a fixed priority: a prefixed word is expanded by its prefix
// function; a quoted word is always a literal; otherwise numbers, then
// control spellings, then registered keywords are tried, and any word that
// matches nothing falls through to a literal.
package fyfth

import "strconv"

var controlWords = map[string]Variant{
	"nil":    Nil,
	"true":   {Tag: VTBool, Data: true},
	"false":  {Tag: VTBool, Data: false},
	"iter":   CtrlIter,
	"macro":  CtrlMacro,
	";":      CtrlLineEnd,
	"queue":  CtrlQueue,
	"push":   CtrlPush,
	"dup":    CtrlDup,
	"swap":   CtrlSwap,
	"swap_n": CtrlSwapN,
	"rotr":   CtrlRotR,
	"rotl":   CtrlRotL,
}

// Parse tokenizes src against the interpreter's language and appends the
// resulting program to the back of the queue. On error nothing further is
// appended, but entries already enqueued remain.
func (it *Interp) Parse(src string) error {
	lx := NewLexer(src, it.lang)
	for {
		w, ok, err := lx.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := it.enqueueWord(w); err != nil {
			return err
		}
	}
}

func (it *Interp) enqueueWord(w Word) error {
	if w.Prefix >= 0 {
		expansion, err := it.lang.prefixes[w.Prefix].fn(w.Text, it.lang)
		if err != nil {
			return &LexError{Msg: err.Error()}
		}
		for _, v := range expansion {
			it.queue.PushBack(v)
		}
		return nil
	}

	if w.Quoted {
		it.queue.PushBack(Lit(w.Text))
		return nil
	}

	if f, err := strconv.ParseFloat(w.Text, 32); err == nil {
		it.queue.PushBack(Num(float32(f)))
		return nil
	}

	if ctrl, ok := controlWords[w.Text]; ok {
		it.queue.PushBack(ctrl)
		return nil
	}

	if id, ok := it.lang.CommandID(w.Text); ok {
		it.queue.PushBack(Command(id))
		return nil
	}

	it.queue.PushBack(Lit(w.Text))
	return nil
}
