package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the interface for the DynamoDB operations used by the unit
// registry.
type DDBClient interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// UnitRegistry reads per-property unit strings from a DynamoDB table, for
// datasets whose buckets carry no README document.
//
// Table schema:
//   - Partition key: dataset (string) - logical dataset name
//   - Sort key: property (string) - property table name
//   - Attribute: unit (string) - declared unit
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name matgo-units \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=property,AttributeType=S \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=property,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type UnitRegistry struct {
	client  DDBClient
	table   string
	dataset string
}

// NewUnitRegistry creates a registry reading the given dataset partition.
func NewUnitRegistry(client DDBClient, table, dataset string) *UnitRegistry {
	return &UnitRegistry{
		client:  client,
		table:   table,
		dataset: dataset,
	}
}

// Units returns all unit declarations of the dataset, following query
// pagination to the end.
func (r *UnitRegistry) Units(ctx context.Context) (map[string]string, error) {
	units := make(map[string]string)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("dataset = :dataset"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":dataset": &types.AttributeValueMemberS{Value: r.dataset},
		},
	}

	for {
		resp, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query unit registry: %w", err)
		}

		for _, item := range resp.Items {
			property, ok := item["property"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}

			unit, ok := item["unit"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}

			units[property.Value] = unit.Value
		}

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}

		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}

	return units, nil
}

// SetUnit writes or overwrites the unit declaration for a property.
func (r *UnitRegistry) SetUnit(ctx context.Context, property, unit string) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]types.AttributeValue{
			"dataset":  &types.AttributeValueMemberS{Value: r.dataset},
			"property": &types.AttributeValueMemberS{Value: property},
			"unit":     &types.AttributeValueMemberS{Value: unit},
		},
	})
	if err != nil {
		return fmt.Errorf("put unit registry item: %w", err)
	}

	return nil
}
