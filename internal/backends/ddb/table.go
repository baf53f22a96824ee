package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const (
	SSession = "SESSION"
	SClient  = "CLIENT"
	SSeq     = "SEQ"

	attrTTL = "ttl"
)

func pkSession(id string) string { return fmt.Sprintf("%s#%s", SSession, id) }

// skClient zero-pads the id so the range key sorts in registration order.
func skClient(id int) string     { return fmt.Sprintf("%s#%010d", SClient, id) }
func skClientPrefix() string     { return SClient + "#" }
func skSeq() string              { return SSeq }
func awsString(s string) *string { return &s }
func awsBool(b bool) *bool       { return &b }

func parseClientID(sk string) (int, error) {
	var id int
	_, err := fmt.Sscanf(sk, "CLIENT#%d", &id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func createTableIfNotExists(client *dynamodb.Client, table string) {
	ctx := context.Background()
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: awsString("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: awsString("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: awsString("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: awsString("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errors.As(err, &re) {
		log.Fatalf("Failed to create table %s: %v", table, err)
	}
	if err == nil {
		err = dynamodb.NewTableExistsWaiter(client).Wait(ctx, &dynamodb.DescribeTableInput{
			TableName: &table,
		}, 30*time.Second)
		if err != nil {
			log.Fatalf("Table %s did not become active: %v", table, err)
		}
		enableTTL(ctx, client, table)
	}
}

// enableTTL turns on expiry for the ttl attribute. Local mocks may not support it.
func enableTTL(ctx context.Context, client *dynamodb.Client, table string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: &table,
		TimeToLiveSpecification: &ddbTypes.TimeToLiveSpecification{
			AttributeName: awsString(attrTTL),
			Enabled:       awsBool(true),
		},
	})
	if err != nil {
		log.WithError(err).WithField("table", table).Warn("could not enable TTL")
	}
}
