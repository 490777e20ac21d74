package bq

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client appends pipeline run records to a BigQuery table. The table schema
// is inferred from the record type and merged when it drifts.
type Client struct {
	bqClient *bigquery.Client
	dataset  types.BQDatasetID
	tableID  types.BQTableID
}

var _ interfaces.AuditSink = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		dataset:  datasetID,
		tableID:  tableID,
	}, nil
}

// Insert implements interfaces.AuditSink.
func (x *Client) Insert(ctx context.Context, record *model.RunRecord) error {
	schema, err := x.ensureTable(ctx, record)
	if err != nil {
		return err
	}

	inserter := x.table().Inserter()
	saver := &bigquery.StructSaver{
		Schema: schema,
		Struct: record,
	}
	if err := inserter.Put(ctx, saver); err != nil {
		return goerr.Wrap(err, "failed to insert run record",
			goerr.V("dataset", x.dataset),
			goerr.V("table", x.tableID),
		)
	}

	return nil
}

func (x *Client) table() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset.String()).Table(x.tableID.String())
}

// ensureTable creates the table on first use and merges the schema when the
// record type gained fields since the table was created.
func (x *Client) ensureTable(ctx context.Context, record *model.RunRecord) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer run record schema")
	}

	md, err := x.table().Metadata(ctx)
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok && gErr.Code == 404 {
			if err := x.table().Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
				return nil, goerr.Wrap(err, "failed to create audit table",
					goerr.V("dataset", x.dataset),
					goerr.V("table", x.tableID),
				)
			}
			return schema, nil
		}
		return nil, goerr.Wrap(err, "failed to get audit table metadata",
			goerr.V("dataset", x.dataset),
			goerr.V("table", x.tableID),
		)
	}

	if bqs.Equal(md.Schema, schema) {
		return schema, nil
	}

	merged, err := bqs.Merge(md.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge audit table schema")
	}
	if _, err := x.table().Update(ctx, bigquery.TableMetadataToUpdate{Schema: merged}, md.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update audit table schema",
			goerr.V("dataset", x.dataset),
			goerr.V("table", x.tableID),
		)
	}

	return merged, nil
}
