// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/cfn"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/collection"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/readiness"
)

const successMessage = "Operation completed successfully."

// DefaultResponseMargin is the part of the invocation deadline kept free for
// sending the response to CloudFormation.
const DefaultResponseMargin = 10 * time.Second

// Index is the subset of the collection API used to manage the vector index.
type Index interface {
	readiness.Prober
	Exists(ctx context.Context, index string) (bool, error)
	Create(ctx context.Context, index string, definition []byte) error
	Delete(ctx context.Context, index string) error
}

// Connector opens a client for the collection named in the request.
type Connector func(ctx context.Context, req *Request) (Index, error)

type Waiter interface {
	Wait(ctx context.Context, prober readiness.Prober) error
}

// Provisioner handles the vector index custom resource. It keeps no state
// between invocations.
type Provisioner struct {
	cfg     *config.Config
	connect Connector
	waiter  Waiter
	logger  *slog.Logger

	responseMargin time.Duration
}

var _ cfn.CustomResourceFunction = (&Provisioner{}).Handle

func New(cfg *config.Config) *Provisioner {
	p := &Provisioner{
		cfg:    cfg,
		waiter: readiness.New(cfg.Readiness),
		logger: slog.Default(),

		responseMargin: DefaultResponseMargin,
	}
	p.connect = p.dial
	return p
}

func (p *Provisioner) dial(ctx context.Context, req *Request) (Index, error) {
	cfg := p.cfg.WithRegion(req.Collection.Region)
	awsCfg, err := cfg.ToAwsConfig(ctx)
	if err != nil {
		p.logger.Error("Failed to load AWS config", "error", err)
		return nil, fmt.Errorf("unable to load aws config: %w", err)
	}

	client, err := collection.NewClient(collection.Options{
		Address: req.Collection.Address,
		AWS:     awsCfg,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Handle processes one custom resource event. Every failure is returned so
// that cfn.LambdaWrap reports it as FAILED with the error text as reason.
func (p *Provisioner) Handle(ctx context.Context, event cfn.Event) (physicalResourceID string, data map[string]interface{}, err error) {
	log := p.logger.With(
		"request_type", event.RequestType,
		"request_id", event.RequestID,
		"logical_resource_id", event.LogicalResourceID,
	)
	log.Info("Received custom resource event",
		"stack_id", event.StackID,
		"resource_type", event.ResourceType,
		"physical_resource_id", event.PhysicalResourceID,
		"resource_properties", event.ResourceProperties,
	)

	physicalResourceID = event.PhysicalResourceID
	if physicalResourceID == "" {
		physicalResourceID = event.LogicalResourceID
	}

	req, err := ParseRequest(event)
	if err != nil {
		if event.RequestType == cfn.RequestDelete && errors.Is(err, ErrInvalidRequest) {
			// A resource with invalid properties was never created.
			log.Warn("Ignoring delete of a resource with invalid properties", "error", err)
			return physicalResourceID, map[string]interface{}{"Message": successMessage}, nil
		}
		log.Error("Rejected custom resource event", "error", err)
		return physicalResourceID, failure(err), err
	}
	physicalResourceID = req.ResourceID()
	log = log.With("index", req.IndexName, "collection", req.Collection.Host)
	if req.Renamed() {
		log.Info("Index renamed, the previous index is removed on cleanup", "previous_index", req.PreviousIndexName)
	}

	ctx, cancel := p.reserveResponseTime(ctx)
	defer cancel()

	index, err := p.connect(ctx, req)
	if err != nil {
		err = fmt.Errorf("connecting to collection %s: %w", req.Collection.Address, err)
		log.Error("Failed to create collection client", "error", err)
		return physicalResourceID, failure(err), err
	}

	switch req.Type {
	case cfn.RequestDelete:
		err = p.remove(ctx, log, index, req.IndexName)
	default:
		err = p.ensure(ctx, log, index, req.IndexName)
	}
	if err != nil {
		log.Error("Processing failed", "error", err)
		return physicalResourceID, failure(err), err
	}

	return physicalResourceID, map[string]interface{}{
		"Message":         successMessage,
		"VectorIndexName": req.IndexName,
	}, nil
}

// reserveResponseTime shortens the invocation deadline by the response margin
// so a timed out wait still leaves time to report FAILED.
func (p *Provisioner) reserveResponseTime(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok || p.responseMargin <= 0 {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline.Add(-p.responseMargin))
}

// ensure waits for the collection and creates the index unless it exists.
func (p *Provisioner) ensure(ctx context.Context, log *slog.Logger, index Index, name string) error {
	log.Info("Processing create/update for index")

	if err := p.waiter.Wait(ctx, index); err != nil {
		return err
	}

	exists, err := index.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		log.Info("Index already exists, nothing to do")
		return nil
	}

	log.Info("Creating index")
	if err := index.Create(ctx, name, IndexDefinition()); err != nil {
		if collection.IsAlreadyExists(err) {
			log.Info("Index was created concurrently, nothing to do")
			return nil
		}
		return err
	}
	log.Info("Index created")
	return nil
}

// remove deletes the index when present.
func (p *Provisioner) remove(ctx context.Context, log *slog.Logger, index Index, name string) error {
	log.Info("Processing delete for index")

	exists, err := index.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		log.Info("Index does not exist, nothing to do")
		return nil
	}

	if err := index.Delete(ctx, name); err != nil {
		if collection.IsNotFound(err) {
			log.Info("Index was removed concurrently, nothing to do")
			return nil
		}
		return err
	}
	log.Info("Index deleted")
	return nil
}

func failure(err error) map[string]interface{} {
	return map[string]interface{}{"Message": err.Error()}
}
