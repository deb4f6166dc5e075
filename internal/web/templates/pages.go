// Package templates renders the presenter's HTML pages.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/flexrun/internal/review"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

func layout(title string, lockScroll bool, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bodyClass := ""
		if lockScroll {
			bodyClass = ` class="no-scroll"`
		}
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body%s>
<main class="view">
`, esc(title), bodyClass); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

// Welcome is the session landing page.
func Welcome(def *domain.TestDefinition) templ.Component {
	return layout(def.Title, false, func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="card">
<h1>¡Bienvenido/a!</h1>
<h2>%s</h2>
<p>%s</p>
<a class="button" href="/t/%s/proto">Empezar</a>
</section>
`, esc(def.Title), esc(def.Description), esc(def.ID))
		return err
	})
}

// Prototype is the embedded prototype page. Scroll is locked while it is
// visible so the iframe owns every gesture.
func Prototype(def *domain.TestDefinition, embedURL string, geometry domain.Geometry, advisory *domain.Advisory) templ.Component {
	return layout(def.Title, domain.StagePrototype.LocksScroll(), func(ctx context.Context, w io.Writer) error {
		if advisory != nil {
			if _, err := fmt.Fprintf(w, `<aside class="advisory" style="animation: dismiss 0s %.0fs forwards;">%s <button onclick="this.parentElement.remove()">x</button></aside>
`, advisory.TTL.Seconds(), esc(advisory.Message)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<div class="proto-container" style="%s">
<iframe src="%s" allowfullscreen loading="eager"></iframe>
</div>
<a class="button next" href="/t/%s/questions">Continuar</a>
`, geometry.CSS(), esc(embedURL), esc(def.ID))
		return err
	})
}

// Questions is the feedback form. values carries previously entered answers so
// a failed submission does not lose them; errMsg renders under the form.
func Questions(def *domain.TestDefinition, values []string, errMsg string) templ.Component {
	return layout(def.Title, false, func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card">
<h1>Contanos tu experiencia</h1>
<form method="post" action="/t/%s/submit">
`, esc(def.ID)); err != nil {
			return err
		}
		for i, q := range def.Questions {
			value := ""
			if i < len(values) {
				value = values[i]
			}
			if _, err := fmt.Fprintf(w, `<label>%d. %s
<textarea name="answer-%d" rows="3" placeholder="Escribí tu respuesta...">%s</textarea>
</label>
`, i+1, esc(q), i, esc(value)); err != nil {
				return err
			}
		}
		if errMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>
`, esc(errMsg)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button class="button" type="submit">Enviar respuestas</button>
</form>
</section>
`)
		return err
	})
}

// Finish is the thank-you page.
func Finish() templ.Component {
	return layout("¡Gracias!", false, func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="card">
<h1>¡Gracias por participar!</h1>
<p>Tus respuestas fueron enviadas correctamente.</p>
</section>
`)
		return err
	})
}

// ErrorPage renders a session failure, with a retry link when the failure is
// retryable.
func ErrorPage(message string, retryable bool, retryURL string) templ.Component {
	return layout("Error", false, func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card">
<h1>No se pudo iniciar el test</h1>
<p class="error">%s</p>
`, esc(message)); err != nil {
			return err
		}
		if retryable && retryURL != "" {
			if _, err := fmt.Fprintf(w, `<a class="button" href="%s">Reintentar</a>
`, esc(retryURL)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// Tests is the creator's test list, newest first.
func Tests(tests []review.TestSummary) templ.Component {
	return layout("Tests", false, func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="card">
<h1>Tus tests</h1>
`); err != nil {
			return err
		}
		if len(tests) == 0 {
			if _, err := io.WriteString(w, `<p class="muted">Todavía no creaste ningún test.</p>
`); err != nil {
				return err
			}
		}
		for _, t := range tests {
			if _, err := fmt.Fprintf(w, `<article class="row">
<a href="/tests/%s">%s</a>
<span class="muted">%s</span>
</article>
`, esc(t.ID), esc(t.Title), esc(t.DateDisplay())); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// Responses shows the collected answers for one test, grouped by question.
func Responses(title string, grouped []review.QuestionResponses) templ.Component {
	pageTitle := title
	if pageTitle == "" {
		pageTitle = "Respuestas"
	}
	return layout(pageTitle, false, func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card">
<h1>%s</h1>
`, esc(pageTitle)); err != nil {
			return err
		}
		if len(grouped) == 0 {
			if _, err := io.WriteString(w, `<p class="muted">Este test todavía no tiene respuestas.</p>
`); err != nil {
				return err
			}
		}
		for i, group := range grouped {
			if _, err := fmt.Fprintf(w, `<h2>%d. %s</h2>
<ul>
`, i+1, esc(group.Question)); err != nil {
				return err
			}
			for _, ans := range group.Answers {
				audio := ""
				if ans.IsAudio {
					audio = ` <span class="tag">audio</span>`
				}
				if _, err := fmt.Fprintf(w, `<li>%s%s <span class="muted">%s</span></li>
`, esc(ans.Answer), audio, esc(ans.Timestamp)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}
