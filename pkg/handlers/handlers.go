package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/booth-roster-go/pkg/auth"
	"github.com/arnavshah/booth-roster-go/pkg/csvio"
	"github.com/arnavshah/booth-roster-go/pkg/database"
	"github.com/arnavshah/booth-roster-go/pkg/models"
	"github.com/arnavshah/booth-roster-go/pkg/registry"
	"github.com/arnavshah/booth-roster-go/pkg/report"
	"github.com/arnavshah/booth-roster-go/pkg/scheduler"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Auth   *auth.Auth
	Logger *zap.Logger
}

// RequestID tags every request with an X-Request-ID, generating a UUID
// when the caller didn't send one.
func RequestID() gin.HandlerFunc {
	const maxLen = 64
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > maxLen {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key for roster routes
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerToken(c)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		name, err := h.Auth.VerifyKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create the key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      name,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("keyName", name)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	return token
}

// ingestSource is one batch of signup rows tagged with where it came from.
type ingestSource struct {
	name string
	rows []models.SignupRecord
}

// buildRoster runs the full pipeline: registry merge, configuration
// check, assignment, coverage. Returns the render bundle and the API
// response body.
func (h *Handler) buildRoster(booths []models.Booth, sources []ingestSource) (*report.Roster, *models.RosterResponse, error) {
	reg := registry.New(h.Logger)
	for _, src := range sources {
		reg.Ingest(src.name, src.rows)
	}
	volunteers := reg.Finalize()

	s, err := scheduler.New(volunteers, booths, h.Logger)
	if err != nil {
		return nil, nil, err
	}
	res := s.Assign()
	roster := report.NewRoster(booths, volunteers, res)

	resp := &models.RosterResponse{
		BoothRoster:     res.BoothRoster,
		VolunteerRoster: res.VolunteerRoster,
		UnfilledSlots:   roster.Unfilled,
		Breaks:          res.Breaks,
		CoverageScore:   scheduler.CoverageScore(res.Assignments, booths),
		VolunteerCount:  reg.UniqueCount(),
	}
	for _, re := range reg.RowErrors() {
		resp.RowErrors = append(resp.RowErrors, re.Error())
	}
	return roster, resp, nil
}

// RosterJSON builds a roster from a JSON body of booths and signup rows
func (h *Handler) RosterJSON(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booths := make([]models.Booth, 0, len(input.Booths))
	for _, name := range input.Booths {
		booths = append(booths, models.Booth{Name: name})
	}

	_, resp, err := h.buildRoster(booths, []ingestSource{{name: "request", rows: input.Signups}})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(booths), resp.VolunteerCount)
	c.JSON(http.StatusOK, resp)
}

// rosterFromUpload parses the multipart booths_file and signups_file
// uploads shared by the CSV and export endpoints.
func (h *Handler) rosterFromUpload(c *gin.Context) (*report.Roster, *models.RosterResponse, bool) {
	boothsFile, _ := c.FormFile("booths_file")
	form, _ := c.MultipartForm()
	var signupFiles []*multipart.FileHeader
	if form != nil {
		signupFiles = form.File["signups_file"]
	}

	if boothsFile == nil || len(signupFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booths_file and at least one signups_file are required"})
		return nil, nil, false
	}

	bf, err := boothsFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open booths file"})
		return nil, nil, false
	}
	defer bf.Close()
	booths, err := csvio.LoadBooths(bf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	var sources []ingestSource
	for _, fh := range signupFiles {
		sf, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to open %s", fh.Filename)})
			return nil, nil, false
		}
		rows, err := csvio.ReadSignups(sf)
		sf.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, nil, false
		}
		sources = append(sources, ingestSource{name: fh.Filename, rows: rows})
	}

	roster, resp, err := h.buildRoster(booths, sources)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return roster, resp, true
}

// RosterCSV builds a roster from uploaded CSV files
func (h *Handler) RosterCSV(c *gin.Context) {
	roster, resp, ok := h.rosterFromUpload(c)
	if !ok {
		return
	}
	h.RecordUsage(c, len(roster.Booths), resp.VolunteerCount)
	c.JSON(http.StatusOK, resp)
}

// RosterExport builds a roster from uploaded CSV files and returns it
// as a downloadable document: format=xlsx (default), booth_pdf, or
// volunteer_pdf.
func (h *Handler) RosterExport(c *gin.Context) {
	roster, resp, ok := h.rosterFromUpload(c)
	if !ok {
		return
	}
	h.RecordUsage(c, len(roster.Booths), resp.VolunteerCount)

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		buf, filename, err := report.WriteXLSX(roster)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "booth_pdf":
		h.servePDF(c, roster, "booth_roster.pdf", report.WriteBoothPDF)
	case "volunteer_pdf":
		h.servePDF(c, roster, "volunteer_roster.pdf", report.WriteVolunteerPDF)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format"})
	}
}

func (h *Handler) servePDF(c *gin.Context, roster *report.Roster, filename string, write func(w io.Writer, r *report.Roster) error) {
	var buf bytes.Buffer
	if err := write(&buf, roster); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build document"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, boothCount, volunteerCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// OnConflict gives a single-query upsert on both Postgres and SQLite
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":    gorm.Expr("request_count + ?", 1),
			"total_booths":     gorm.Expr("total_booths + ?", boothCount),
			"total_volunteers": gorm.Expr("total_volunteers + ?", volunteerCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:           apiKey.ID,
		Date:            today,
		RequestCount:    1,
		TotalBooths:     boothCount,
		TotalVolunteers: volunteerCount,
	})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
