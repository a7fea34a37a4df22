package server

import (
	"html/template"
	"net/http"

	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/story"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Roboto, sans-serif; margin: 0; color: #111; }
header { padding: 2rem 4rem; }
main { display: flex; }
#steps { width: 40%; padding: 0 2rem 50vh 4rem; }
.step { min-height: 80vh; opacity: .35; transition: opacity .3s; }
.step.active { opacity: 1; }
.note { color: #888; font-size: .9rem; }
#figure { position: sticky; top: 5vh; height: 90vh; width: 60%; }
#figure img { width: 100%; max-width: {{.Size}}px; }
</style>
</head>
<body>
<header><h1>{{.Title}}</h1>{{with .Subtitle}}<p>{{.}}</p>{{end}}</header>
<main>
<section id="steps">
{{range $i, $s := .Steps}}<div class="step" data-step="{{$i}}"><p>{{$s.Text}}</p>{{with $s.Note}}<p class="note">{{.}}</p>{{end}}</div>
{{end}}</section>
<section id="figure"><img id="frame" src="/frames/{{.Sentinel}}.svg" alt=""></section>
</main>
<script>
const frame = document.getElementById('frame');
const steps = document.querySelectorAll('.step');
const observer = new IntersectionObserver(entries => {
  for (const e of entries) {
    if (!e.isIntersecting) continue;
    steps.forEach(s => s.classList.remove('active'));
    e.target.classList.add('active');
    frame.src = '/frames/' + e.target.dataset.step + '.svg';
  }
}, { rootMargin: '-{{.TriggerPercent}}% 0px -{{.BelowPercent}}% 0px' });
steps.forEach(s => observer.observe(s));
</script>
</body>
</html>
`))

type indexData struct {
	Title          string
	Subtitle       string
	Steps          []story.Step
	Size           float64
	Sentinel       int
	TriggerPercent int
	BelowPercent   int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.bundle.Story
	trigger := int(st.TriggerOffset * 100)
	data := indexData{
		Title:          st.Title,
		Subtitle:       st.Subtitle,
		Steps:          st.Steps,
		Size:           s.size,
		Sentinel:       pipeline.SentinelStep,
		TriggerPercent: trigger,
		BelowPercent:   max(100-trigger-1, 0),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}
