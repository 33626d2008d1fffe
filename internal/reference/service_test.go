// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/reference"
)

// memoryRepository serves a fixed reference set.
type memoryRepository struct {
	domains   map[string]*reference.Domain
	counties  map[string][]reference.County
	townships map[string][]reference.Township
	calls     int
}

func (m *memoryRepository) GetDomain(_ context.Context, code string) (*reference.Domain, error) {
	m.calls++
	if domain, ok := m.domains[code]; ok {
		return domain, nil
	}
	return nil, apperr.NotFound("Domain " + code)
}

func (m *memoryRepository) ListCounties(_ context.Context, domain string) ([]reference.County, error) {
	m.calls++
	return m.counties[domain], nil
}

func (m *memoryRepository) ListTownships(_ context.Context, domain, county string) ([]reference.Township, error) {
	m.calls++
	return m.townships[domain+":"+county], nil
}

func newRepository() *memoryRepository {
	return &memoryRepository{
		domains: map[string]*reference.Domain{
			"CAON": {Code: "CAON", Name: "Ontario", Lang: "en"},
			"CACW": {Code: "CACW", Name: "Canada West", Lang: "en"},
		},
		counties: map[string][]reference.County{
			"CAON": {
				{Domain: "CAON", Code: "Bru", Name: "Bruce", StartYear: 1867, EndYear: 9999},
				{Domain: "CAON", Code: "Msx", Name: "Middlesex", StartYear: 1800, EndYear: 9999},
			},
		},
		townships: map[string][]reference.Township{
			"CAON:Msx": {
				{Domain: "CAON", County: "Msx", Code: "Adelaide", Name: "Adelaide"},
				{Domain: "CAON", County: "Msx", Code: "London", Name: "London Township"},
			},
		},
	}
}

func TestService_Domain_Default(t *testing.T) {
	service := reference.NewService(newRepository(), "CAON")

	domain, err := service.Domain(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Ontario", domain.Name)

	_, err = service.Domain(context.Background(), "USNY")
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Counties_ByYear(t *testing.T) {
	service := reference.NewService(newRepository(), "CAON")

	counties, err := service.Counties(context.Background(), "CAON", 1850)
	require.NoError(t, err)
	require.Len(t, counties, 1)
	assert.Equal(t, "Msx", counties[0].Code)

	counties, err = service.Counties(context.Background(), "CAON", 0)
	require.NoError(t, err)
	assert.Len(t, counties, 2)
}

func TestService_CountyName(t *testing.T) {
	service := reference.NewService(newRepository(), "CAON")

	name, err := service.CountyName(context.Background(), "CAON", "Msx")
	require.NoError(t, err)
	assert.Equal(t, "Middlesex", name)

	_, err = service.CountyName(context.Background(), "CAON", "Xyz")
	assert.True(t, apperr.IsNotFound(err))
}

func TestHandler_Counties_XML(t *testing.T) {
	handler := reference.NewHandler(reference.NewService(newRepository(), "CAON"))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/counties?Domain=caon", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var decoded struct {
		Domain   string `xml:"parms>domain"`
		Counties []struct {
			Code string `xml:"code,attr"`
			Name string `xml:",chardata"`
		} `xml:"county"`
	}
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &decoded))
	assert.Equal(t, "CAON", decoded.Domain)
	require.Len(t, decoded.Counties, 2)
	assert.Equal(t, "Bru", decoded.Counties[0].Code)
	assert.Equal(t, "Middlesex", decoded.Counties[1].Name)
}

func TestHandler_Townships_Errors(t *testing.T) {
	handler := reference.NewHandler(reference.NewService(newRepository(), "CAON"))

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing_county", "/townships?domain=CAON", http.StatusBadRequest},
		{"invalid_domain", "/townships?domain=C4ON&county=Msx", http.StatusBadRequest},
		{"unknown_county", "/townships?domain=CAON&county=Xyz", http.StatusNotFound},
		{"ok", "/townships?domain=CAON&county=Msx", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, recorder.Code)

			var decoded struct {
				Msg string `xml:"msg"`
			}
			require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &decoded))
			if tt.status == http.StatusOK {
				assert.Empty(t, decoded.Msg)
			} else {
				assert.NotEmpty(t, decoded.Msg)
			}
		})
	}
}
