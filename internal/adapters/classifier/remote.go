package classifier

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/pool"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// DefaultRemoteTimeout bounds a single classification request.
const DefaultRemoteTimeout = 10 * time.Second

// A 48x48 grayscale frame encodes to about 10KB of JSON.
var bodyPool = pool.NewBufferPool(16 * 1024)

// Remote classifies images by posting them to an HTTP inference endpoint.
//
// The request body is {"shape": [...], "data": [...]} with data in row-major
// order. The endpoint answers 200 with either {"emotion": "happy"} or
// {"code": 3}.
type Remote struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	logger  ports.Logger
}

// RemoteOption configures a Remote classifier.
type RemoteOption func(*Remote)

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.timeout = d
	}
}

// WithHTTPClient sets the fasthttp client used for requests.
func WithHTTPClient(c *fasthttp.Client) RemoteOption {
	return func(r *Remote) {
		r.client = c
	}
}

// WithRemoteLogger sets the logger for failed requests.
func WithRemoteLogger(l ports.Logger) RemoteOption {
	return func(r *Remote) {
		r.logger = l
	}
}

type classifyRequest struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

type classifyResponse struct {
	Emotion string `json:"emotion,omitempty"`
	Code    *int   `json:"code,omitempty"`
}

// NewRemote creates a classifier for the endpoint at url.
func NewRemote(url string, opts ...RemoteOption) (*Remote, error) {
	if url == "" {
		return nil, errors.New("classifier url must not be empty")
	}
	r := &Remote{
		url:     url,
		timeout: DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.timeout <= 0 {
		return nil, errors.New("classifier timeout must be greater than 0")
	}
	if r.client == nil {
		r.client = &fasthttp.Client{
			Name:                "go_ish",
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	return r, nil
}

// Classify sends img to the endpoint and decodes the returned emotion.
func (r *Remote) Classify(img *domain.Array) (domain.Emotion, error) {
	body := bodyPool.Get()
	defer bodyPool.Put(body)
	if err := json.NewEncoder(body).Encode(classifyRequest{Shape: img.Shape(), Data: img.Data()}); err != nil {
		return 0, errors.Wrap(err, "encoding image")
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body.Bytes())

	if err := r.client.DoTimeout(req, resp, r.timeout); err != nil {
		r.logFailure("Classifier request failed", err)
		return 0, errors.Wrapf(err, "calling classifier %s", r.url)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		err := errors.Newf("classifier %s returned status %d", r.url, status)
		r.logFailure("Classifier rejected request", err)
		return 0, err
	}

	var out classifyResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, errors.Wrap(err, "decoding classifier response")
	}
	return out.emotion()
}

func (r *Remote) logFailure(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, "url", r.url, "error", err)
	}
}

func (c classifyResponse) emotion() (domain.Emotion, error) {
	if c.Code != nil {
		e := domain.Emotion(*c.Code)
		if !e.Valid() {
			return 0, errors.Newf("classifier returned unknown code %d", *c.Code)
		}
		return e, nil
	}
	if c.Emotion != "" {
		return domain.ParseEmotion(c.Emotion)
	}
	return 0, errors.New("classifier response has neither emotion nor code")
}
