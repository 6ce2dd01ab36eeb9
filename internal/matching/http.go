package matching

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	errMissingInputs = "Resume file and job description are missing."
	errProcessing    = "Failed to process the resume."
)

type Handler struct {
	scorer Scorer
}

func Register(rg gin.IRouter, scorer Scorer) {
	h := &Handler{scorer: scorer}

	rg.POST("/match-resume", h.matchResume)
}

// matchResume accepts a multipart form with a "resume" file and a
// "job_description" text field and answers {"result": <score>}. The scorer
// is never called unless both inputs are present.
func (h *Handler) matchResume(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	jobDescription := strings.TrimSpace(c.PostForm("job_description"))

	if err != nil || fileHeader == nil || jobDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingInputs})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[matching] open upload error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errProcessing})
		return
	}
	defer file.Close()

	resume, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[matching] read upload error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errProcessing})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	result, err := h.scorer.Score(c.Request.Context(), resume, mimeType, jobDescription)
	if err != nil {
		log.Printf("[matching] score error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errProcessing})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
