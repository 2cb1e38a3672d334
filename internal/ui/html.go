package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Attr is a single HTML attribute. Boolean attributes are written without a
// value and skipped entirely when Off is set.
type Attr struct {
	Key   string
	Value string
	Bool  bool
	Off   bool
}

func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// If is a boolean attribute such as disabled or checked.
func If(key string, on bool) Attr {
	return Attr{Key: key, Bool: true, Off: !on}
}

// Class merges tailwind classes, later ones winning conflicts.
func Class(classes ...string) Attr {
	return Attr{Key: "class", Value: twmerge.Merge(classes...)}
}

// Href sanitizes the URL the way templ does for href expressions.
func Href(url string) Attr {
	return Attr{Key: "href", Value: string(templ.URL(url))}
}

// ID is omitted when empty.
func ID(id string) Attr {
	return Attr{Key: "id", Value: id, Off: id == ""}
}

var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "link": true, "meta": true,
}

// El renders an element. Each arg is an Attr, []Attr, a templ.Component child,
// or a string child (escaped). Nil components are skipped.
func El(tag string, args ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var attrs []Attr
		var children []templ.Component
		for _, arg := range args {
			switch v := arg.(type) {
			case Attr:
				attrs = append(attrs, v)
			case []Attr:
				attrs = append(attrs, v...)
			case string:
				children = append(children, Text(v))
			case templ.Component:
				if v != nil {
					children = append(children, v)
				}
			case nil:
			default:
				return fmt.Errorf("ui: unsupported child %T in <%s>", arg, tag)
			}
		}

		var b strings.Builder
		b.WriteString("<" + tag)
		for _, a := range attrs {
			if a.Off {
				continue
			}
			b.WriteString(" " + a.Key)
			if !a.Bool {
				b.WriteString(`="` + templ.EscapeString(a.Value) + `"`)
			}
		}
		b.WriteString(">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if voidTags[tag] {
			return nil
		}

		for _, c := range children {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

func Textf(format string, args ...any) templ.Component {
	return Text(fmt.Sprintf(format, args...))
}

// Group renders children back to back without a wrapper.
func Group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// When returns c if cond holds, nil otherwise.
func When(cond bool, c templ.Component) templ.Component {
	if !cond {
		return nil
	}
	return c
}

// Each maps items to components.
func Each[T any](items []T, fn func(T) templ.Component) templ.Component {
	children := make([]templ.Component, 0, len(items))
	for _, item := range items {
		children = append(children, fn(item))
	}
	return Group(children...)
}

// Script is a script tag carrying the request's CSP nonce.
func Script(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return El("script", A("src", src), A("nonce", templ.GetNonce(ctx)), If("defer", true)).Render(ctx, w)
	})
}
