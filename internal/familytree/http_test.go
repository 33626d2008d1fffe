// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree_test

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/familytree/mocks"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
)

// recordingLinker remembers the IDIR stored per detail.
type recordingLinker struct {
	linked map[string]int64
	fail   error
}

func (l *recordingLinker) Source() familytree.SourceKind { return familytree.SourceDeath }

func (l *recordingLinker) LinkRecord(_ context.Context, detail string, idir int64) (familytree.Event, error) {
	if l.fail != nil {
		return 0, l.fail
	}
	l.linked[detail] = idir
	return familytree.EventDeath, nil
}

func editorRequest(method, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_Match(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	handler := familytree.NewHandler(familytree.NewService(repo, nil))

	repo.EXPECT().
		FindCandidates(gomock.Any(), gomock.Any()).
		Return([]familytree.Candidate{{
			IDIR: 12, Surname: "Smith", GivenName: "John", Gender: familytree.GenderMale,
			BirthSD: 18550101, DeathSD: 19210101, Father: "William Smith", Spouses: []string{"Mary Brown"},
		}}, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/match?surname=Smith&givennames=John&role=G&age=45&year=1900&rownum=3", nil)
	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var decoded struct {
		Rownum string `xml:"parms>rownum"`
		Indivs []struct {
			ID      int64    `xml:"id,attr"`
			Name    string   `xml:"name"`
			Parents string   `xml:"parents"`
			Spouses []string `xml:"spouse"`
		} `xml:"indiv"`
	}
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &decoded))
	assert.Equal(t, "3", decoded.Rownum)
	require.Len(t, decoded.Indivs, 1)
	assert.Equal(t, int64(12), decoded.Indivs[0].ID)
	assert.Equal(t, "John Smith (1855–1921)", decoded.Indivs[0].Name)
	assert.Equal(t, "William Smith", decoded.Indivs[0].Parents)
	assert.Equal(t, []string{"Mary Brown"}, decoded.Indivs[0].Spouses)
}

func TestHandler_Match_Minister(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	handler := familytree.NewHandler(familytree.NewService(repo, nil))

	repo.EXPECT().
		FindCandidates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, criteria familytree.Criteria) ([]familytree.Candidate, error) {
			assert.False(t, criteria.SexKnown)
			assert.Equal(t, 1860-familytree.OfficiantAge-familytree.UnconstrainedDelta, criteria.BirthFrom)
			assert.Equal(t, 1860-familytree.OfficiantAge+familytree.UnconstrainedDelta, criteria.BirthTo)
			return []familytree.Candidate{{IDIR: 31, Surname: "Gray", GivenName: "James", BirthSD: 18100101}}, nil
		})

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/match?surname=Gray&givennames=James&role=M&year=1860&rownum=3", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `id="31"`)
}

func TestHandler_Match_BadYear(t *testing.T) {
	handler := familytree.NewHandler(familytree.NewService(mocks.NewMockRepository(gomock.NewController(t)), nil))

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/match?surname=Smith&year=18", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<msg>")
}

func TestHandler_Link(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	linker := &recordingLinker{linked: map[string]int64{}}
	handler := familytree.NewHandler(familytree.NewService(repo, nil), linker)

	repo.EXPECT().GetPerson(gomock.Any(), int64(12)).Return(&familytree.Person{IDIR: 12}, nil).Times(2)
	repo.EXPECT().
		AddCitation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, citation *familytree.Citation) error {
			assert.Equal(t, familytree.EventDeath, citation.Event)
			assert.Equal(t, "jcobb", citation.CreatedBy)
			return nil
		})

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, editorRequest(http.MethodPost, "/citations", url.Values{
		"source": {"death"}, "detail": {"CAON 1887-12"}, "idir": {"12"},
	}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, int64(12), linker.linked["CAON 1887-12"])
}

func TestHandler_Link_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	linker := &recordingLinker{linked: map[string]int64{}, fail: apperr.NotFound("Death registration")}
	handler := familytree.NewHandler(familytree.NewService(repo, nil), linker)

	anonymous := httptest.NewRequest(http.MethodPost, "/citations", nil)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, anonymous)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, editorRequest(http.MethodPost, "/citations", url.Values{
		"source": {"death"}, "detail": {"CAON 1887-12"},
	}))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, editorRequest(http.MethodPost, "/citations", url.Values{
		"source": {"marriage"}, "detail": {"CAON 1887-12 G"}, "idir": {"12"},
	}))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	repo.EXPECT().GetPerson(gomock.Any(), int64(12)).Return(&familytree.Person{IDIR: 12}, nil)
	recorder = httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, editorRequest(http.MethodPost, "/citations", url.Values{
		"source": {"death"}, "detail": {"CAON 1887-99"}, "idir": {"12"},
	}))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Death registration not found")
}

func TestHandler_Unlink(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	linker := &recordingLinker{linked: map[string]int64{"CAON 1887-12": 12}}
	handler := familytree.NewHandler(familytree.NewService(repo, nil), linker)

	repo.EXPECT().DeleteCitations(gomock.Any(), familytree.SourceDeath, "CAON 1887-12").Return(int64(1), nil)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, editorRequest(http.MethodPost, "/citations/delete", url.Values{
		"source": {"death"}, "detail": {"CAON 1887-12"},
	}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<count>1</count>")
	assert.Zero(t, linker.linked["CAON 1887-12"])
}
