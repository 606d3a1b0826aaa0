package stellar

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/imroc/req"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/iho/escrowledger/internal/domain"
)

// RequestObserver is notified of every Horizon round trip.
type RequestObserver interface {
	ObserveLedgerRequest(endpoint string, status int, duration time.Duration)
}

// HorizonConfig configures the Horizon client.
type HorizonConfig struct {
	URL           string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

// HorizonClient implements usecase.LedgerGateway over Horizon's REST API.
type HorizonClient struct {
	baseURL       string
	client        *req.Req
	httpClient    *http.Client
	observer      RequestObserver
	logger        zerolog.Logger
	maxRetries    uint64
	retryInterval time.Duration
}

// NewHorizonClient creates a new HorizonClient. observer may be nil.
func NewHorizonClient(cfg HorizonConfig, logger zerolog.Logger, observer RequestObserver) *HorizonClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 200 * time.Millisecond
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &HorizonClient{
		baseURL:       strings.TrimSuffix(cfg.URL, "/"),
		client:        req.New(),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		observer:      observer,
		logger:        logger,
		maxRetries:    uint64(cfg.MaxRetries),
		retryInterval: cfg.RetryInterval,
	}
}

// FetchAccount loads an account's balances, signers, thresholds and data.
func (c *HorizonClient) FetchAccount(ctx context.Context, address string) (*domain.Account, error) {
	body, err := c.get(ctx, "account", "/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, err
	}
	return parseAccount(body)
}

// FetchTransaction loads a transaction by hash.
func (c *HorizonClient) FetchTransaction(ctx context.Context, hash string) (*domain.TxDetail, error) {
	body, err := c.get(ctx, "transaction", "/transactions/"+url.PathEscape(hash), nil)
	if err != nil {
		return nil, err
	}
	detail := &domain.TxDetail{
		TxSummary:   parseTxSummary(body),
		EnvelopeXDR: body.Get("envelope_xdr").String(),
		ResultXDR:   body.Get("result_xdr").String(),
		FeeCharged:  body.Get("fee_charged").String(),
	}
	return detail, nil
}

// FetchOperations loads one page of a transaction's operations.
func (c *HorizonClient) FetchOperations(ctx context.Context, hash string, page domain.PageRequest) ([]*domain.OperationRecord, error) {
	body, err := c.get(ctx, "operations", "/transactions/"+url.PathEscape(hash)+"/operations", pageQuery(page))
	if err != nil {
		return nil, err
	}

	records := body.Get("_embedded.records").Array()
	ops := make([]*domain.OperationRecord, 0, len(records))
	for _, r := range records {
		ops = append(ops, parseOperation(r))
	}
	return ops, nil
}

// FetchAccountTransactions loads one page of an account's transaction history.
func (c *HorizonClient) FetchAccountTransactions(ctx context.Context, address string, page domain.PageRequest) ([]*domain.TxSummary, error) {
	body, err := c.get(ctx, "account_transactions", "/accounts/"+url.PathEscape(address)+"/transactions", pageQuery(page))
	if err != nil {
		return nil, err
	}

	records := body.Get("_embedded.records").Array()
	txs := make([]*domain.TxSummary, 0, len(records))
	for _, r := range records {
		tx := parseTxSummary(r)
		txs = append(txs, &tx)
	}
	return txs, nil
}

// Submit posts a signed envelope once. Submissions are never retried.
func (c *HorizonClient) Submit(ctx context.Context, envelopeXDR string) (*domain.SubmitResult, error) {
	start := time.Now()
	r, err := c.client.Post(c.baseURL+"/transactions", req.Param{"tx": envelopeXDR}, c.httpClient, ctx)
	if err != nil {
		c.observe("submit", 0, start)
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, errors.Wrap(err, "horizon submit"), "ledger gateway unavailable")
	}

	status := r.Response().StatusCode
	c.observe("submit", status, start)
	body := gjson.ParseBytes(r.Bytes())

	switch {
	case status == http.StatusOK:
		return &domain.SubmitResult{
			Hash:       body.Get("hash").String(),
			Ledger:     body.Get("ledger").Int(),
			Successful: body.Get("successful").Bool(),
		}, nil
	case status == http.StatusBadRequest:
		codes := resultCodes(body)
		return nil, domain.WrapError(domain.ErrEnvelopeRejected,
			errors.Errorf("horizon submit: %s", body.Get("detail").String()),
			"transaction rejected: %s", codes)
	default:
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable,
			errors.Errorf("horizon submit: [%d]%s", status, body.Get("title").String()),
			"ledger gateway unavailable")
	}
}

// Ping checks that Horizon answers its root resource.
func (c *HorizonClient) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "root", "/", nil)
	return err
}

// get performs a GET with retries on transport errors and 5xx responses.
func (c *HorizonClient) get(ctx context.Context, endpoint, path string, query req.QueryParam) (gjson.Result, error) {
	var result gjson.Result

	args := []interface{}{req.Header{"Accept": "application/json"}, c.httpClient, ctx}
	if query != nil {
		args = append(args, query)
	}

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()

		r, err := c.client.Get(c.baseURL+path, args...)
		if err != nil {
			c.observe(endpoint, 0, start)
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return errors.Wrapf(err, "horizon %s", endpoint)
		}

		status := r.Response().StatusCode
		c.observe(endpoint, status, start)

		if err := classifyStatus(endpoint, path, status, r.Bytes()); err != nil {
			if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
				return err
			}
			return backoff.Permanent(err)
		}

		result = gjson.ParseBytes(r.Bytes())
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Int("attempt", attempt).Dur("retry_in", wait).Msg("horizon request failed, retrying")
	}

	err := backoff.RetryNotify(operation, c.backOff(ctx), notify)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return gjson.Result{}, err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return gjson.Result{}, err
		}
		return gjson.Result{}, domain.WrapError(domain.ErrUpstreamUnavailable, err, "ledger gateway unavailable")
	}

	return result, nil
}

func (c *HorizonClient) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 10 * c.retryInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
}

func (c *HorizonClient) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveLedgerRequest(endpoint, status, time.Since(start))
	}
}

// classifyStatus maps Horizon status codes onto the error taxonomy.
func classifyStatus(endpoint, path string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	title := gjson.GetBytes(body, "title").String()
	cause := errors.Errorf("horizon %s %s: [%d]%s", endpoint, path, status, title)

	switch {
	case status == http.StatusNotFound:
		return domain.WrapError(domain.ErrUpstreamNotFound, cause, "%s not found", resourceName(path))
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		return domain.WrapError(domain.ErrUpstreamUnavailable, cause, "ledger gateway unavailable")
	default:
		return domain.WrapError(domain.ErrInvalidValue, cause, "ledger gateway rejected the request: %s", title)
	}
}

func resourceName(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 {
		kind := strings.TrimSuffix(parts[0], "s")
		return fmt.Sprintf("%s %s", kind, parts[1])
	}
	return path
}

func pageQuery(page domain.PageRequest) req.QueryParam {
	q := req.QueryParam{}
	if page.Order != "" {
		q["order"] = page.Order
	}
	if page.Limit > 0 {
		q["limit"] = strconv.Itoa(page.Limit)
	}
	if page.Cursor != "" {
		q["cursor"] = page.Cursor
	}
	return q
}

func resultCodes(body gjson.Result) string {
	codes := []string{}
	if tx := body.Get("extras.result_codes.transaction").String(); tx != "" {
		codes = append(codes, tx)
	}
	for _, op := range body.Get("extras.result_codes.operations").Array() {
		codes = append(codes, op.String())
	}
	if len(codes) == 0 {
		return body.Get("title").String()
	}
	return strings.Join(codes, ", ")
}

func parseAccount(body gjson.Result) (*domain.Account, error) {
	seq, err := strconv.ParseInt(body.Get("sequence").String(), 10, 64)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, errors.Wrap(err, "parse sequence"), "ledger gateway returned a malformed account")
	}

	acc := &domain.Account{
		Address:  body.Get("account_id").String(),
		Sequence: seq,
		Thresholds: domain.Thresholds{
			Low:    int32(body.Get("thresholds.low_threshold").Int()),
			Medium: int32(body.Get("thresholds.med_threshold").Int()),
			High:   int32(body.Get("thresholds.high_threshold").Int()),
		},
		Data: map[string][]byte{},
	}

	for _, b := range body.Get("balances").Array() {
		amount, err := decimal.NewFromString(b.Get("balance").String())
		if err != nil {
			return nil, domain.WrapError(domain.ErrUpstreamUnavailable, errors.Wrap(err, "parse balance"), "ledger gateway returned a malformed account")
		}
		line := domain.Balance{
			AssetType:   b.Get("asset_type").String(),
			AssetCode:   b.Get("asset_code").String(),
			AssetIssuer: b.Get("asset_issuer").String(),
			Balance:     amount,
		}
		if l := b.Get("limit"); l.Exists() {
			line.Limit, _ = decimal.NewFromString(l.String())
		}
		acc.Balances = append(acc.Balances, line)
	}

	for _, s := range body.Get("signers").Array() {
		acc.Signers = append(acc.Signers, domain.Signer{
			Key:    s.Get("key").String(),
			Type:   s.Get("type").String(),
			Weight: int32(s.Get("weight").Int()),
		})
	}

	var decodeErr error
	body.Get("data").ForEach(func(key, value gjson.Result) bool {
		raw, err := base64.StdEncoding.DecodeString(value.String())
		if err != nil {
			decodeErr = errors.Wrapf(err, "decode data entry %s", key.String())
			return false
		}
		acc.Data[key.String()] = raw
		return true
	})
	if decodeErr != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, decodeErr, "ledger gateway returned a malformed account")
	}

	return acc, nil
}

func parseTxSummary(r gjson.Result) domain.TxSummary {
	created, _ := time.Parse(time.RFC3339, r.Get("created_at").String())
	return domain.TxSummary{
		Hash:           r.Get("hash").String(),
		PagingToken:    r.Get("paging_token").String(),
		SourceAccount:  r.Get("source_account").String(),
		Memo:           r.Get("memo").String(),
		MemoType:       r.Get("memo_type").String(),
		Ledger:         r.Get("ledger").Int(),
		OperationCount: int(r.Get("operation_count").Int()),
		Successful:     r.Get("successful").Bool(),
		CreatedAt:      created,
	}
}

var operationFields = map[string]bool{
	"id": true, "paging_token": true, "type": true, "type_i": true,
	"source_account": true, "transaction_hash": true, "created_at": true,
	"transaction_successful": true,
}

func parseOperation(r gjson.Result) *domain.OperationRecord {
	created, _ := time.Parse(time.RFC3339, r.Get("created_at").String())
	op := &domain.OperationRecord{
		ID:              r.Get("id").String(),
		PagingToken:     r.Get("paging_token").String(),
		Type:            r.Get("type").String(),
		SourceAccount:   r.Get("source_account").String(),
		TransactionHash: r.Get("transaction_hash").String(),
		CreatedAt:       created,
		Attributes:      map[string]string{},
	}

	r.ForEach(func(key, value gjson.Result) bool {
		if operationFields[key.String()] || key.String() == "_links" || value.IsObject() || value.IsArray() {
			return true
		}
		op.Attributes[key.String()] = value.String()
		return true
	})

	return op
}
