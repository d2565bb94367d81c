package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRequest_Validate(t *testing.T) {
	valid := AnalyzeRequest{ResumeText: "some resume text"}
	assert.NoError(t, valid.Validate())

	withOptions := AnalyzeRequest{ResumeText: "text", Role: "software-engineer", DetectRole: true}
	assert.NoError(t, withOptions.Validate())

	missing := AnalyzeRequest{JobDescription: "a job"}
	assert.Error(t, missing.Validate())
}

func TestDetectRoleRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DetectRoleRequest{ResumeText: "text"}).Validate())
	assert.Error(t, (&DetectRoleRequest{}).Validate())
}

func TestExtractKeywordsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ExtractKeywordsRequest{JobDescription: "a job"}).Validate())
	assert.NoError(t, (&ExtractKeywordsRequest{JobDescription: "a job", ResumeText: "r"}).Validate())
	assert.Error(t, (&ExtractKeywordsRequest{ResumeText: "r"}).Validate())
}
