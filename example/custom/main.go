// Package main demonstrates a custom renderer and custom key bindings.
package main

import (
	"fmt"
	"log"
	"sort"
	"strings"

	gridprompt "github.com/nao1215/gridprompt"
)

func main() {
	fields := gridprompt.Grid{
		{{ID: "host", Required: true}, {ID: "port", Default: "22"}},
		{{ID: "user", Required: true}},
	}

	// A render function has full control of the body: no template, no
	// built-in styling.
	render := func(values map[string]string, editing bool, errorIDs []string, focusedID string) string {
		ids := make([]string, 0, len(values))
		for id := range values {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var b strings.Builder
		for _, id := range ids {
			marker := "  "
			if id == focusedID {
				marker = "> "
			}
			fmt.Fprintf(&b, "%s%-5s %s\n", marker, id, values[id])
		}
		return strings.TrimRight(b.String(), "\n")
	}

	p, err := gridprompt.New(fields,
		gridprompt.WithRenderFunc(render),
		gridprompt.WithActions(
			gridprompt.ActionConfig{
				Scope: gridprompt.ScopeNavigate,
				Name:  gridprompt.ActionDone,
				Key:   "ctrl+s",
				Label: "connect",
			},
			gridprompt.ActionConfig{
				Scope: gridprompt.ScopeNavigate,
				Name:  "reset-port",
				Key:   "ctrl+r",
				Func: func(c gridprompt.Controls) {
					c.SetValue("port", "22")
				},
			},
		),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	values, err := p.Run()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ssh %s@%s -p %s\n", values["user"], values["host"], values["port"])
}
