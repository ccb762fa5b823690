package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the format used when rendering dates to people.
const DisplayDateLayout = "02/01/2006"

// Area enumerates candidate interest categories.
type Area string

const (
	AreaTechnology     Area = "Tecnologia"
	AreaMarketing      Area = "Marketing"
	AreaSales          Area = "Vendas"
	AreaHumanResources Area = "Recursos Humanos"
	AreaDesign         Area = "Design"
)

// Areas lists every area in presentation order.
var Areas = []Area{AreaTechnology, AreaMarketing, AreaSales, AreaHumanResources, AreaDesign}

// Valid reports whether a belongs to the fixed area set.
func (a Area) Valid() bool {
	for _, v := range Areas {
		if a == v {
			return true
		}
	}
	return false
}

// CandidateStatus enumerates pipeline stages.
type CandidateStatus string

const (
	CandidateStatusNew                CandidateStatus = "Novo"
	CandidateStatusInReview           CandidateStatus = "Em Análise"
	CandidateStatusInterviewScheduled CandidateStatus = "Entrevista Agendada"
	CandidateStatusApproved           CandidateStatus = "Aprovado"
	CandidateStatusRejected           CandidateStatus = "Reprovado"
)

// CandidateStatuses lists every status in pipeline order. The first entry is the default.
var CandidateStatuses = []CandidateStatus{
	CandidateStatusNew,
	CandidateStatusInReview,
	CandidateStatusInterviewScheduled,
	CandidateStatusApproved,
	CandidateStatusRejected,
}

// DefaultCandidateStatus is assigned to new records submitted without a status.
func DefaultCandidateStatus() CandidateStatus {
	return CandidateStatuses[0]
}

// Valid reports whether s belongs to the fixed status set.
func (s CandidateStatus) Valid() bool {
	for _, v := range CandidateStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CandidateFields is the replaceable part of a candidate record.
type CandidateFields struct {
	Name             string
	Email            string
	Phone            string
	Area             Area
	Status           CandidateStatus
	RegistrationDate time.Time
}

// Candidate is a tracked applicant.
type Candidate struct {
	ID string
	CandidateFields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TruncateDate drops the clock part of t, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
