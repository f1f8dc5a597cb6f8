package client

import (
	"context"
	"net/url"
	"strconv"

	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
)

type (
	Candidate      = appCandidate.Candidate
	CandidateList  = appCandidate.ListResult
	Classification = appCandidate.Classification
)

// CandidatesClient reads the sample candidate table.
type CandidatesClient struct {
	client *Client
}

// List returns the first count candidates.
func (c *CandidatesClient) List(ctx context.Context, count int) (*CandidateList, error) {
	var out CandidateList
	q := url.Values{"count": {strconv.Itoa(count)}}
	if err := c.client.getJSON(ctx, "/candidates", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CandidatesClient) Get(ctx context.Context, id string) (*Candidate, error) {
	var out Candidate
	if err := c.client.getJSON(ctx, "/candidates/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Top returns the n best-ranked candidates.
func (c *CandidatesClient) Top(ctx context.Context, n int) (*CandidateList, error) {
	var out CandidateList
	if err := c.client.getJSON(ctx, "/candidates/top", url.Values{"n": {strconv.Itoa(n)}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CandidatesClient) Classify(ctx context.Context, score float64) (*Classification, error) {
	var out Classification
	q := url.Values{"score": {strconv.FormatFloat(score, 'f', -1, 64)}}
	if err := c.client.getJSON(ctx, "/classify", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
