package client

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/memory"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/DeNovo-Designer/internal/interfaces/http"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/handlers"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// SDKTestSuite drives the SDK against the real router.
type SDKTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func (s *SDKTestSuite) SetupTest() {
	log := logging.NewNopLogger()
	analysisSvc := appAnalysis.NewService(memory.NewRunRepository(time.Hour),
		appAnalysis.Config{MaxUploadBytes: 1 << 20, StructureSeed: 42, StructurePoints: 100}, log)
	s.server = httptest.NewServer(httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(analysisSvc, 2<<20, log),
		CandidateHandler: handlers.NewCandidateHandler(appCandidate.NewService(nil, log), log),
		Logger:           log,
	}))

	var err error
	s.client, err = NewClient(s.server.URL, WithRetryMax(0))
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *SDKTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *SDKTestSuite) submit(countRange domainAnalysis.CountRange) *RunResult {
	res, err := s.client.Analyses().Submit(s.ctx, &SubmitRequest{
		ProjectName: "Kinase-A",
		Options: Options{
			BindingSiteMethod: domainAnalysis.BindingSiteGridBox,
			CountRange:        countRange,
			GridBox:           &domainAnalysis.GridBox{CenterX: 1.5, SizeX: 20, SizeY: 20, SizeZ: 20},
		},
		Target: &File{Name: "target.pdb", Data: []byte("ATOM")},
		Seed:   &File{Name: "seed.sdf", Data: []byte("$$$$")},
	})
	s.Require().NoError(err)
	return res
}

func (s *SDKTestSuite) TestCandidates() {
	list, err := s.client.Candidates().List(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(list.Items, 3)

	c, err := s.client.Candidates().Get(s.ctx, "Ligand-003")
	s.Require().NoError(err)
	s.Equal(-8.5, c.BindingAffinity)
	s.Equal(candidate.TierHigh, c.Tier)

	top, err := s.client.Candidates().Top(s.ctx, 20)
	s.Require().NoError(err)
	s.Len(top.Items, candidate.FixtureSize)

	cl, err := s.client.Candidates().Classify(s.ctx, 0.2999)
	s.Require().NoError(err)
	s.Equal(candidate.ColorRed, cl.Color)
}

func (s *SDKTestSuite) TestCandidates_Errors() {
	_, err := s.client.Candidates().Get(s.ctx, "Ligand-999")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.True(apiErr.IsNotFound())

	_, err = s.client.Candidates().List(s.ctx, 11)
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("CAND_003", apiErr.Code)
}

func (s *SDKTestSuite) TestSubmitAndViews() {
	res := s.submit(domainAnalysis.CountRange5To10)
	s.Equal("Kinase-A", res.Run.ProjectName)
	s.Equal(10, res.Overview.GeneratedCount)
	s.Require().NotNil(res.Run.Options.GridBox)
	s.Equal(1.5, res.Run.Options.GridBox.CenterX)
	s.Require().NotNil(res.Run.Seed)

	got, err := s.client.Analyses().Get(s.ctx, res.Run.ID)
	s.Require().NoError(err)
	s.Equal(res.Run.ID, got.Run.ID)

	dock, err := s.client.Analyses().Docking(s.ctx, res.Run.ID, "Ligand-003")
	s.Require().NoError(err)
	s.Equal("Ligand-003", dock.Ligand.ID)

	drug, err := s.client.Analyses().Druggability(s.ctx, res.Run.ID, "Ligand-010")
	s.Require().NoError(err)
	s.Equal(0.53, drug.Score)
	s.Equal(candidate.TierMedium, drug.Tier)

	seed := int64(7)
	st, err := s.client.Analyses().Structure(s.ctx, res.Run.ID, "Ligand-001", &seed)
	s.Require().NoError(err)
	s.True(st.Placeholder)
	s.Equal(seed, st.Seed)
}

func (s *SDKTestSuite) TestSubmit_MissingTarget() {
	_, err := s.client.Analyses().Submit(s.ctx, &SubmitRequest{})
	s.True(errors.IsCode(err, errors.ErrCodeTargetMissing))

	_, err = s.client.Analyses().Submit(s.ctx, &SubmitRequest{
		Target:  &File{Name: "target.pdb", Data: []byte("ATOM")},
		Options: Options{CountRange: "2-3"},
	})
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("ANL_002", apiErr.Code)
	s.True(apiErr.IsBadRequest())
}

func (s *SDKTestSuite) TestDownload() {
	res := s.submit(domainAnalysis.CountRange1To5)

	d, err := s.client.Analyses().Download(s.ctx, res.Run.ID, appAnalysis.FormatCSV)
	s.Require().NoError(err)
	s.Equal("results.csv", d.FileName)
	s.Contains(d.ContentType, "text/csv")

	set, err := candidate.DecodeCSV(bytes.NewReader(d.Data))
	s.Require().NoError(err)
	s.True(set.Equal(candidate.MustBuild(5)))

	_, err = s.client.Analyses().Download(s.ctx, res.Run.ID, "sdf")
	s.Error(err)
}

func (s *SDKTestSuite) TestDemoAndChoices() {
	ov, err := s.client.Analyses().Demo(s.ctx)
	s.Require().NoError(err)
	s.Equal(candidate.FixtureSize, ov.GeneratedCount)

	choices, err := s.client.Analyses().Choices(s.ctx)
	s.Require().NoError(err)
	s.Contains(choices["count_range"], "50-100")
}

func TestSDKTestSuite(t *testing.T) {
	suite.Run(t, new(SDKTestSuite))
}

func TestDownloadPaths_CoverEveryFormat(t *testing.T) {
	for _, f := range []ExportFormat{appAnalysis.FormatCSV, appAnalysis.FormatXLSX, appAnalysis.FormatReport, appAnalysis.FormatPDB} {
		_, ok := downloadPaths[f]
		require.True(t, ok, string(f))
	}
}

//Personal.AI order the ending
