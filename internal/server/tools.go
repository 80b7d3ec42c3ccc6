package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxToolBodyBytes = 1 << 20

func (s *Server) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.tools.Describe()})
}

// ExecuteTool passes the raw JSON body to the named tool as its parameters.
func (s *Server) ExecuteTool(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxToolBodyBytes))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	out, err := s.tools.Execute(c.Request.Context(), c.Param("name"), json.RawMessage(body))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
