package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// pathID parses the :id path parameter
func pathID(ctx *gin.Context) (int64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// queryParser collects the first parse failure of a set of query parameters
type queryParser struct {
	ctx *gin.Context
	err error
}

func newQueryParser(ctx *gin.Context) *queryParser {
	return &queryParser{ctx: ctx}
}

func (p *queryParser) intParam(name string, dst *int) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", name, raw)
		return
	}
	*dst = v
}

func (p *queryParser) int64Param(name string, dst *int64) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", name, raw)
		return
	}
	*dst = v
}

func (p *queryParser) floatParam(name string, dst *float64) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", name, raw)
		return
	}
	*dst = v
}

func (p *queryParser) boolParam(name string, dst *bool) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", name, raw)
		return
	}
	*dst = v
}

// dateParam accepts YYYY-MM-DD
func (p *queryParser) dateParam(name string, dst *time.Time) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := billing.ParseDate(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	*dst = v
}

// timeParam accepts RFC3339
func (p *queryParser) timeParam(name string, dst *time.Time) {
	raw := p.ctx.Query(name)
	if raw == "" || p.err != nil {
		return
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q, expected RFC3339", name, raw)
		return
	}
	*dst = v.UTC()
}

func (p *queryParser) page(dst *billing.Page, sortBy *string) {
	p.intParam("limit", &dst.Limit)
	p.intParam("offset", &dst.Offset)
	if v := p.ctx.Query("sortBy"); v != "" {
		*sortBy = v
	}
	if v := p.ctx.Query("sortOrder"); v != "" {
		dst.SortOrder = v
	}
}
