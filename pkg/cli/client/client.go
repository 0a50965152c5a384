/* Copyright 2025 Quill Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client provides interfaces for interacting with the quill server
// and the data structures for responses
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/log"
	"golang.org/x/time/rate"
)

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// requestOptions contains options for requests
type requestOptions struct {
	HTTPClient *http.Client
	// NoAuth skips credential attachment and 401 session teardown. It is
	// set for the authentication endpoints themselves.
	NoAuth bool
	// IfMatchVersion, when set, is sent as the If-Match precondition so
	// the server rejects the write if the resource has moved past this
	// version. When nil, no precondition is sent and the write is
	// unconditional.
	IfMatchVersion *int
}

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
	}
}

func getHTTPClient(ctx context.QuillCtx, options *requestOptions) *http.Client {
	if options != nil && options.HTTPClient != nil {
		return options.HTTPClient
	}

	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getReq(ctx context.QuillCtx, path, method, body string, options *requestOptions) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", ctx.Version)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	noAuth := options != nil && options.NoAuth
	if !noAuth && req.Header.Get("Authorization") == "" {
		if token := ctx.Session.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	if options != nil && options.IfMatchVersion != nil {
		// the version is an opaque tag to the server, quoted per the ETag
		// convention
		req.Header.Set("If-Match", fmt.Sprintf("%q", strconv.Itoa(*options.IfMatchVersion)))
	}

	return req, nil
}

// checkRespErr checks if the given http response indicates an error. It
// returns a typed *Error carrying the failure kind, status code and the
// decoded server message.
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	return newStatusError(res.StatusCode, body)
}

// doReq does a http request to the given path in the api endpoint. Any 401
// response on an authenticated call tears down the session globally before
// the error propagates; the teardown is idempotent.
func doReq(ctx context.QuillCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	req, err := getReq(ctx, path, method, body, options)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx, options)
	res, err := hc.Do(req)
	if err != nil {
		return res, newNetworkError(err)
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		var httpErr *Error
		noAuth := options != nil && options.NoAuth
		if !noAuth && errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
			ctx.Session.HandleUnauthorized()
		}

		return res, err
	}

	return res, nil
}

// doAuthorizedReq does a http request to the given path in the api endpoint as a user,
// with the appropriate headers. The given path should include the preceding slash.
func doAuthorizedReq(ctx context.QuillCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	if ctx.Session.Token() == "" {
		return nil, errors.New("no session key found")
	}

	return doReq(ctx, method, path, body, options)
}

// decodeResp decodes the response body onto the destination
func decodeResp(res *http.Response, dest interface{}) error {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "decoding payload")
	}

	return nil
}
