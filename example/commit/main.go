// Package main demonstrates a conventional-commit message builder.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	gridprompt "github.com/nao1215/gridprompt"
)

var commitTypes = map[string]bool{
	"feat": true, "fix": true, "docs": true, "style": true,
	"refactor": true, "test": true, "chore": true,
}

func main() {
	fields := gridprompt.Grid{
		{
			{
				ID:        "type",
				Required:  true,
				Transform: strings.ToLower,
				Validate: func(v string) error {
					if v != "" && !commitTypes[v] {
						return fmt.Errorf("unknown commit type %q", v)
					}
					return nil
				},
			},
			{ID: "scope", Transform: strings.ToLower},
		},
		{
			{
				ID:       "subject",
				Required: true,
				Validate: func(v string) error {
					if len(v) > 72 {
						return fmt.Errorf("subject longer than 72 characters")
					}
					return nil
				},
			},
		},
		{
			{ID: "body", Multiline: true},
		},
	}

	p, err := gridprompt.New(fields,
		gridprompt.WithTemplate("{type}({scope}): {subject}\n\n{body}"),
		gridprompt.WithInitialValues(map[string]string{"type": "feat"}),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	fmt.Println("Commit Message Builder")
	fmt.Println("Arrows move, Enter edits, Delete clears, Alt+Enter finishes")
	fmt.Println()

	values, err := p.Run()
	if err != nil {
		if errors.Is(err, gridprompt.ErrInterrupted) {
			fmt.Println("Aborted.")
			return
		}
		log.Fatal(err)
	}

	message := fmt.Sprintf("%s(%s): %s", values["type"], values["scope"], values["subject"])
	if values["scope"] == "" {
		message = fmt.Sprintf("%s: %s", values["type"], values["subject"])
	}
	if values["body"] != "" {
		message += "\n\n" + values["body"]
	}
	fmt.Println(message)
}
