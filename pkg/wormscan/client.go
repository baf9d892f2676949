// Package wormscan reads guardian observations from the Wormscan API.
package wormscan

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tidwall/gjson"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

// StatusError is returned for responses outside of the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
}

// Observation is the signature of a single guardian over a VAA.
type Observation struct {
	GuardianAddr common.Address
	Signature    vaa.SignatureData
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	newBackoff func() backoff.BackOff
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithLogger(logger *zap.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

// WithBackoff replaces the retry policy. newBackoff is called once per request.
func WithBackoff(newBackoff func() backoff.BackOff) Option {
	return func(client *Client) { client.newBackoff = newBackoff }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
		newBackoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observations returns the guardian signatures Wormscan has seen for the message chain/emitter/seq.
func (c *Client) Observations(ctx context.Context, chain vaa.ChainID, emitter vaa.Address, seq uint64) ([]Observation, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v1/observations/%d/%s/%d", chain, emitter, seq))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON in observations response")
	}

	results := gjson.ParseBytes(body).Array()
	observations := make([]Observation, 0, len(results))
	for i, r := range results {
		addr := r.Get("guardianAddr").String()
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("observation %d: invalid guardian address %q", i, addr)
		}
		sig, err := base64.StdEncoding.DecodeString(r.Get("signature").String())
		if err != nil {
			return nil, fmt.Errorf("observation %d: invalid signature: %w", i, err)
		}
		if len(sig) != len(vaa.SignatureData{}) {
			return nil, fmt.Errorf("observation %d: signature is %d bytes, expected %d", i, len(sig), len(vaa.SignatureData{}))
		}

		o := Observation{GuardianAddr: common.HexToAddress(addr)}
		copy(o.Signature[:], sig)
		observations = append(observations, o)
	}
	return observations, nil
}

// CurrentGuardianSet returns the guardian set Wormscan considers current.
func (c *Client) CurrentGuardianSet(ctx context.Context) (uint32, []common.Address, error) {
	body, err := c.get(ctx, "/v1/guardianset/current")
	if err != nil {
		return 0, nil, err
	}

	index := gjson.GetBytes(body, "guardianSet.index")
	addrs := gjson.GetBytes(body, "guardianSet.addresses")
	if !index.Exists() || !addrs.IsArray() {
		return 0, nil, errors.New("guardian set response is missing index or addresses")
	}

	var keys []common.Address
	for _, a := range addrs.Array() {
		if !common.IsHexAddress(a.String()) {
			return 0, nil, fmt.Errorf("invalid guardian address %q", a.String())
		}
		keys = append(keys, common.HexToAddress(a.String()))
	}
	return uint32(index.Uint()), keys, nil // #nosec G115 -- guardian set indices are uint32 on chain
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Add("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode > 299 {
			statusErr := &StatusError{URL: url, StatusCode: res.StatusCode}
			if res.StatusCode >= 500 {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		body, err = io.ReadAll(res.Body)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Wormscan request failed, retrying", zap.String("url", url), zap.Duration("wait", wait), zap.Error(err))
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(c.newBackoff(), ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

// SignaturesFor turns observations into VAA signatures using each guardian's position in guardianSet. Observations by
// addresses outside the set are logged and skipped, and only the first observation of each guardian is kept. The
// result is sorted by guardian index.
func SignaturesFor(observations []Observation, guardianSet []common.Address, logger *zap.Logger) []*vaa.Signature {
	indices := make(map[common.Address]uint8, len(guardianSet))
	for i, addr := range guardianSet {
		indices[addr] = uint8(i) // #nosec G115 -- guardian sets hold at most 19 guardians
	}

	seen := make(map[uint8]struct{}, len(observations))
	sigs := make([]*vaa.Signature, 0, len(observations))
	for _, o := range observations {
		index, ok := indices[o.GuardianAddr]
		if !ok {
			logger.Warn("Failed to look up guardian address, skipping", zap.Stringer("address", o.GuardianAddr))
			continue
		}
		if _, dup := seen[index]; dup {
			continue
		}
		seen[index] = struct{}{}
		sigs = append(sigs, &vaa.Signature{Index: index, Signature: o.Signature})
	}

	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Index < sigs[j].Index })
	return sigs
}
