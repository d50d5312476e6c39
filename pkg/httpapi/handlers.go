package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaimusic/miditime/pkg/midi"
)

func readUpload(c *gin.Context) ([]byte, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return nil, false
	}
	return data, true
}

// handleParse godoc
// @Summary Parse an SMF file into a format/division/node-map summary
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "SMF file"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/parse [post]
func handleParse(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}
	seq, err := midi.ParseBytes(data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ParseResponse{
		Format:     uint16(seq.Format()),
		Division:   divisionToJSON(seq.Division()),
		Nodes:      nodesToJSON(seq.Timeline().Nodes()),
		EventCount: len(seq.Events()),
		NumTracks:  seq.NumTracks(),
	})
}

// handleDump godoc
// @Summary Parse an SMF file and dump its caller-visible events
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "SMF file"
// @Success 200 {object} DumpResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/dump [post]
func handleDump(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}
	seq, err := midi.ParseBytes(data)
	if err != nil {
		respondError(c, err)
		return
	}
	events := seq.Events()
	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = eventToJSON(ev)
	}
	c.JSON(http.StatusOK, DumpResponse{Events: out})
}

// handleConvert godoc
// @Summary Parse, optionally reformat/transpose, and re-emit SMF bytes
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "SMF file"
// @Param format query int false "target SMF format (0 or 1)"
// @Param transpose query int false "semitones to shift note events by"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func handleConvert(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}
	seq, err := midi.ParseBytes(data)
	if err != nil {
		respondError(c, err)
		return
	}

	if formatParam := c.Query("format"); formatParam != "" {
		f, err := strconv.Atoi(formatParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be an integer"})
			return
		}
		if err := seq.SetFormat(midi.Format(f)); err != nil {
			respondError(c, err)
			return
		}
	}

	if transposeParam := c.Query("transpose"); transposeParam != "" {
		semitones, err := strconv.Atoi(transposeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "transpose must be an integer"})
			return
		}
		seq.Transpose(semitones, nil)
	}

	out, err := seq.Bytes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=converted.mid")
	c.Data(http.StatusOK, "audio/midi", out)
}

func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var merr *midi.Error
	if e, ok := err.(*midi.Error); ok {
		merr = e
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  kindOf(merr),
	})
}

func kindOf(e *midi.Error) string {
	if e == nil {
		return ""
	}
	return e.Kind.String()
}
