package projects

import (
	"encoding/json"
	"strings"
)

// Project is one raw record from the project search api. No schema is
// enforced upstream, every field may be missing; fields that the api
// serves inconsistently use the flexible types below.
type Project struct {
	Id                   string       `json:"id"`
	ProjectName          string       `json:"project_name"`
	Url                  string       `json:"url"`
	CountryShortName     string       `json:"countryshortname"`
	CountryCode          StringOrList `json:"countrycode"`
	RegionName           string       `json:"regionname"`
	TotalCommAmt         FlexString   `json:"totalcommamt"`
	IbrdCommAmt          FlexString   `json:"ibrdcommamt"`
	IdaCommAmt           FlexString   `json:"idacommamt"`
	Status               string       `json:"status"`
	ProjectStatusDisplay string       `json:"projectstatusdisplay"`
	LendingInstr         string       `json:"lendinginstr"`
	ProdLineText         string       `json:"prodlinetext"`
	TeamLeadName         string       `json:"teamleadname"`
	BoardApprovalDate    string       `json:"boardapprovaldate"`
	BoardApprovalMonth   string       `json:"board_approval_month"`
	ClosingDate          string       `json:"closingdate"`
	ApprovalFy           FlexString   `json:"approvalfy"`
}

// searchResponse is the shape of the project search api body. Records
// come back as a map keyed by project id.
type searchResponse struct {
	Total    json.Number        `json:"total"`
	Projects map[string]Project `json:"projects"`
}

// StringOrList tolerates a field that the api serves either as a plain
// string or as a list of strings.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = StringOrList{single}
	return nil
}

// First returns the first element, or the empty string when there is none.
func (s StringOrList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// FlexString tolerates a field that the api serves either as a string
// or as a bare number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexString(num.String())
	return nil
}
