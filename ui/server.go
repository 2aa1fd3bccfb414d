package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"ixscreen/adapters/report"
	"ixscreen/domain/core"
	"ixscreen/ports"

	"github.com/gin-gonic/gin"
)

// Server is a small read-only web UI over persisted screening runs:
// a run list and per-run report pages rendered from the stored
// markdown.
type Server struct {
	router *gin.Engine
	repo   ports.RunRepository
}

// NewServer creates the UI server around a run repository
func NewServer(repo ports.RunRepository, ginMode string) *Server {
	gin.SetMode(ginMode)
	s := &Server{router: gin.New(), repo: repo}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.GET("/", s.handleIndex)
	s.router.GET("/runs/:id", s.handleRun)
	return s
}

// Run starts the server on the given port
func (s *Server) Run(port string) error {
	log.Printf("[UI] listening on :%s", port)
	return s.router.Run(":" + port)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Interaction screening runs</title></head>
<body>
<h1>Screening runs</h1>
{{if not .Runs}}<p>No runs recorded yet.</p>{{end}}
<table border="1" cellpadding="4">
<tr><th>ID</th><th>Created</th><th>Heredity</th><th>n</th><th>p</th><th>r1</th><th>r2</th></tr>
{{range .Runs}}
<tr>
	<td><a href="/runs/{{.ID}}">{{.ID}}</a></td>
	<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
	<td>{{.Heredity}}</td>
	<td>{{.Rows}}</td>
	<td>{{.Cols}}</td>
	<td>{{.R1}}</td>
	<td>{{.R2}}</td>
</tr>
{{end}}
</table>
</body>
</html>`))

var runTemplate = template.Must(template.New("run").Parse(`<!DOCTYPE html>
<html>
<head><title>Run {{.ID}}</title></head>
<body>
<p><a href="/">&larr; all runs</a></p>
{{.Report}}
</body>
</html>`))

func (s *Server) handleIndex(c *gin.Context) {
	runs, err := s.repo.ListRuns(c.Request.Context(), 100)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list runs: %v", err)
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(c.Writer, gin.H{"Runs": runs}); err != nil {
		log.Printf("[UI] index render: %v", err)
	}
}

func (s *Server) handleRun(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "malformed run id")
		return
	}
	run, err := s.repo.GetRun(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, fmt.Sprintf("run not found: %v", err))
		return
	}

	html := report.RenderHTML(run.Report)
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := runTemplate.Execute(c.Writer, gin.H{
		"ID":     run.ID,
		"Report": template.HTML(html), // rendered from our own stored markdown
	}); err != nil {
		log.Printf("[UI] run render: %v", err)
	}
}
