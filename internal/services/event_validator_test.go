package services

import (
	"testing"

	"eventsapi/internal/domain"

	"github.com/stretchr/testify/assert"
)

func validPayload() domain.EventPayload {
	return domain.EventPayload{
		Name:                    "Spring",
		Description:             "REST API Development with Spring",
		BeginEnrollmentDateTime: domain.NewLocalDateTime(2018, 11, 23, 14, 21, 0),
		CloseEnrollmentDateTime: domain.NewLocalDateTime(2018, 11, 24, 14, 21, 0),
		BeginEventDateTime:      domain.NewLocalDateTime(2018, 11, 25, 14, 21, 0),
		EndEventDateTime:        domain.NewLocalDateTime(2018, 11, 26, 14, 21, 0),
		Location:                "D2 startup factory",
		BasePrice:               100,
		MaxPrice:                200,
		LimitOfEnrollment:       100,
	}
}

func TestEventValidator_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(p *domain.EventPayload)
		wantFields []string
	}{
		{name: "valid", mutate: func(p *domain.EventPayload) {}},
		{
			name:       "base price above max price",
			mutate:     func(p *domain.EventPayload) { p.BasePrice, p.MaxPrice = 10000, 200 },
			wantFields: []string{"basePrice"},
		},
		{
			name:   "max price zero means unlimited",
			mutate: func(p *domain.EventPayload) { p.BasePrice, p.MaxPrice = 10000, 0 },
		},
		{
			name:   "equal prices",
			mutate: func(p *domain.EventPayload) { p.BasePrice, p.MaxPrice = 200, 200 },
		},
		{
			name: "end before begin event",
			mutate: func(p *domain.EventPayload) {
				p.EndEventDateTime = domain.NewLocalDateTime(2018, 11, 24, 23, 0, 0)
			},
			wantFields: []string{"endEventDateTime"},
		},
		{
			name: "end before close enrollment only",
			mutate: func(p *domain.EventPayload) {
				p.BeginEventDateTime = domain.NewLocalDateTime(2018, 11, 20, 0, 0, 0)
				p.CloseEnrollmentDateTime = domain.NewLocalDateTime(2018, 12, 1, 0, 0, 0)
			},
			wantFields: []string{"endEventDateTime"},
		},
		{
			name: "end before begin enrollment only",
			mutate: func(p *domain.EventPayload) {
				p.BeginEnrollmentDateTime = domain.NewLocalDateTime(2018, 12, 1, 0, 0, 0)
			},
			wantFields: []string{"endEventDateTime"},
		},
		{
			name: "end equal to begin event is valid",
			mutate: func(p *domain.EventPayload) {
				p.EndEventDateTime = p.BeginEventDateTime
			},
		},
		{
			name: "both rules fail in declaration order",
			mutate: func(p *domain.EventPayload) {
				p.BasePrice, p.MaxPrice = 10000, 200
				p.EndEventDateTime = domain.NewLocalDateTime(2018, 11, 22, 14, 21, 0)
			},
			wantFields: []string{"basePrice", "endEventDateTime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			errs := EventValidator{}.Validate(p)

			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
				assert.Equal(t, domain.EventObjectName, e.ObjectName)
				assert.Equal(t, "wrongValue", e.Code)
			}
			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestEventValidator_messages(t *testing.T) {
	p := validPayload()
	p.BasePrice, p.MaxPrice = 300, 200
	p.EndEventDateTime = domain.NewLocalDateTime(2018, 11, 1, 0, 0, 0)

	errs := EventValidator{}.Validate(p)
	if assert.Len(t, errs, 2) {
		assert.Contains(t, errs[0].DefaultMessage, "wrong price")
		assert.Equal(t, 300, errs[0].RejectedValue)
		assert.Contains(t, errs[1].DefaultMessage, "wrong dates")
		assert.Equal(t, "2018-11-01T00:00:00", errs[1].RejectedValue)
	}
}
