package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/edit"
	"github.com/signadot/tomledit/encode"
	"github.com/signadot/tomledit/format"
	"github.com/signadot/tomledit/ir"
	"github.com/signadot/tomledit/session"
)

const replHelp = `commands:
  show [path]                 print the document or one value
  set <path> <value>          set a value, keeping the kind of an existing scalar
  add <path> <kind> <value>   add a key of kind string, number, boolean, color, array or table
  new <path> <value>          add a key typed from its value
  del <path>                  delete an entry
  rename <path> <key>         rename an entry in place
  append <path> <value>       append to a list, typed like its elements
  remove <path> <i>           remove list element i
  replace <path> <i> <value>  replace list element i
  move <path> <i> <delta>     move list element i by delta
  patch <json>                apply a JSON patch ([...]) or merge patch ({...})
  undo | redo
  find <needle>               list paths whose key contains needle
  query <expr>                list entries matching an expr-lang expression
  diff                        list changes since the last load or save
  export <format>             print the document as toml, json or yaml
  name <name>                 rename the document
  status
  open <path> | load <path> | save | saveas <path>
  quit
`

// syncWriter serializes writes from the session goroutine and the prompt.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type repl struct {
	ctx context.Context
	s   *session.Session
	cfg *MainConfig
	out io.Writer
}

func (r *repl) run(in io.Reader) error {
	prompt := false
	if f, ok := in.(*os.File); ok {
		prompt = isatty.IsTerminal(f.Fd())
	}
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			io.WriteString(r.out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := r.exec(line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return sc.Err()
}

// fields splits n arguments off line; the last one takes the rest of the
// line.
func fields(line string, n int) ([]string, error) {
	res := make([]string, 0, n)
	rest := strings.TrimSpace(line)
	for len(res) < n-1 {
		head, tail, _ := strings.Cut(rest, " ")
		if head == "" {
			return nil, fmt.Errorf("expected %d arguments", n)
		}
		res = append(res, head)
		rest = strings.TrimSpace(tail)
	}
	if rest == "" {
		return nil, fmt.Errorf("expected %d arguments", n)
	}
	return append(res, rest), nil
}

func (r *repl) exec(line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "quit", "q", "exit":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(r.out, replHelp)
		return false, err
	case "show", "p":
		return false, r.show(rest)
	case "undo", "redo":
		return false, r.history(cmd)
	case "diff":
		return false, r.diff()
	case "find":
		return false, r.find(rest)
	case "query":
		return false, r.query(rest)
	case "export":
		return false, r.export(rest)
	case "status":
		return false, r.status()
	case "name":
		return false, r.s.Do(r.ctx, func(d *document.Document) { d.SetName(rest) })
	case "open":
		return false, r.s.Open(r.ctx, rest)
	case "load":
		d, err := os.ReadFile(rest)
		if err != nil {
			return false, err
		}
		return false, r.s.LoadRaw(r.ctx, string(d), filepath.Base(rest))
	case "save":
		return false, r.s.Save(r.ctx)
	case "saveas":
		return false, r.s.SaveAs(r.ctx, rest)
	}
	m, err := r.mutator(cmd, rest)
	if err != nil {
		return false, err
	}
	return false, r.s.Commit(r.ctx, m)
}

func (r *repl) mutator(cmd, rest string) (document.Mutator, error) {
	n := map[string]int{
		"set": 2, "add": 3, "new": 2, "del": 1, "rename": 2,
		"append": 2, "remove": 2, "replace": 3, "move": 3, "patch": 1,
	}[cmd]
	if n == 0 {
		return nil, fmt.Errorf("unknown command %q, try help", cmd)
	}
	args, err := fields(rest, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd, err)
	}
	if cmd == "patch" {
		p := []byte(args[0])
		if strings.HasPrefix(args[0], "[") {
			return edit.ApplyJSONPatch(p), nil
		}
		if !json.Valid(p) {
			return nil, fmt.Errorf("patch: invalid JSON")
		}
		return edit.ApplyMergePatch(p), nil
	}
	p, err := ir.ParsePath(args[0])
	if err != nil {
		return nil, err
	}
	switch cmd {
	case "set":
		return setText(p, args[1]), nil
	case "add":
		k, err := edit.ParseKind(args[1])
		if err != nil {
			return nil, err
		}
		return edit.AddKey(p.Parent(), p.Last(), k, rawText(args[2])), nil
	case "new":
		return edit.AddInferred(p.Parent(), p.Last(), rawText(args[1])), nil
	case "del":
		return edit.DeleteKey(p), nil
	case "rename":
		return edit.RenameKey(p, args[1]), nil
	case "append":
		return edit.ListAppendRaw(p, rawText(args[1])), nil
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: bad index: %w", cmd, err)
	}
	switch cmd {
	case "remove":
		return edit.ListRemove(p, i), nil
	case "replace":
		return edit.ListReplace(p, i, parseValue(args[2])), nil
	}
	delta, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("move: bad delta: %w", err)
	}
	return edit.ListMove(p, i, delta), nil
}

func (r *repl) tree() (*ir.Node, error) {
	var t *ir.Node
	err := r.s.Do(r.ctx, func(d *document.Document) { t = d.Tree() })
	return t, err
}

func (r *repl) show(rest string) error {
	t, err := r.tree()
	if err != nil {
		return err
	}
	p, err := ir.ParsePath(rest)
	if err != nil {
		return err
	}
	v, ok := t.Get(p)
	if !ok {
		return fmt.Errorf("%s not found", p)
	}
	return writeValue(r.cfg, r.out, v)
}

func (r *repl) history(cmd string) error {
	ok := false
	err := r.s.Do(r.ctx, func(d *document.Document) {
		if cmd == "undo" {
			ok = d.Undo()
			return
		}
		ok = d.Redo()
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(r.out, "nothing to %s\n", cmd)
	}
	return nil
}

func (r *repl) diff() error {
	var lines []string
	err := r.s.Do(r.ctx, func(d *document.Document) {
		for _, c := range d.Unsaved() {
			lines = append(lines, c.String())
		}
	})
	if err != nil {
		return err
	}
	for _, ln := range lines {
		fmt.Fprintln(r.out, ln)
	}
	return nil
}

func (r *repl) find(rest string) error {
	t, err := r.tree()
	if err != nil {
		return err
	}
	return searchKeys(r.out, t, rest)
}

func (r *repl) query(rest string) error {
	t, err := r.tree()
	if err != nil {
		return err
	}
	return filterEntries(r.out, t, rest)
}

func (r *repl) export(rest string) error {
	f, err := format.ParseFormat(rest)
	if err != nil {
		return err
	}
	var (
		text   string
		encErr error
	)
	err = r.s.Do(r.ctx, func(d *document.Document) {
		text, encErr = d.Serialize(encode.EncodeFormat(f), encode.OmitNulls(r.cfg.OmitNulls))
	})
	if err != nil {
		return err
	}
	if encErr != nil {
		return encErr
	}
	_, err = io.WriteString(r.out, text)
	return err
}

func (r *repl) status() error {
	st, err := r.s.State(r.ctx)
	if err != nil {
		return err
	}
	dirty := ""
	if st.Dirty {
		dirty = " (modified)"
	}
	_, err = fmt.Fprintf(r.out, "%s%s: %s [%d/%d]\n", st.Name, dirty, st.Status, st.Cursor+1, st.Len)
	return err
}
