package ddb

import (
	"clientreg/internal/types"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ClientStore keeps one session under a single partition key:
// a SEQ item holding the id counter and one CLIENT#<id> item per record.
type ClientStore struct {
	table   string
	session string
	ttl     time.Duration
	cli     *dynamodb.Client
}

type clientItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	types.ClientRecord
	ExpiresAt int64 `dynamodbav:"ttl,omitempty"`
}

// NewClientStore returns a store scoped to session. A zero ttl disables expiry.
func NewClientStore(table, session string, ttl time.Duration, cli *dynamodb.Client) *ClientStore {
	// Creates the table only if it doesn't exist.
	createTableIfNotExists(cli, table)
	return &ClientStore{table: table, session: session, ttl: ttl, cli: cli}
}

func (s *ClientStore) Register(ctx context.Context, fields types.ClientFields) (types.ClientRecord, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
	}
	rec := types.NewRecord(id, fields)
	item, err := attributevalue.MarshalMap(clientItem{
		PK:           pkSession(s.session),
		SK:           skClient(id),
		ClientRecord: rec,
		ExpiresAt:    s.expiresAt(),
	})
	if err != nil {
		return types.ClientRecord{}, err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.table,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "register client %d", id)
	}
	return rec, nil
}

// nextID bumps the session counter atomically with ADD.
func (s *ClientStore) nextID(ctx context.Context) (int, error) {
	update := "ADD #seq :one"
	names := map[string]string{"#seq": "seq"}
	values := map[string]ddbTypes.AttributeValue{
		":one": &ddbTypes.AttributeValueMemberN{Value: "1"},
	}
	if exp := s.expiresAt(); exp > 0 {
		update = "SET #ttl = :ttl " + update
		names["#ttl"] = attrTTL
		values[":ttl"] = &ddbTypes.AttributeValueMemberN{Value: itoa(exp)}
	}
	out, err := s.cli.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &s.table,
		Key:                       s.key(skSeq()),
		UpdateExpression:          awsString(update),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              ddbTypes.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	var seq struct {
		Seq int `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &seq); err != nil {
		return 0, err
	}
	return seq.Seq, nil
}

func (s *ClientStore) List(ctx context.Context) ([]types.ClientRecord, error) {
	p := dynamodb.NewQueryPaginator(s.cli, &dynamodb.QueryInput{
		TableName:              &s.table,
		KeyConditionExpression: awsString("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkSession(s.session)},
			":sk": &ddbTypes.AttributeValueMemberS{Value: skClientPrefix()},
		},
		ConsistentRead: awsBool(true),
	})
	recs := []types.ClientRecord{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, types.Err(types.ErrDataStoreAccess, err, "")
		}
		var items []clientItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			id, err := parseClientID(it.SK)
			if err != nil {
				return nil, fmt.Errorf("invalid sort key %q: %w", it.SK, err)
			}
			it.ClientRecord.ID = id
			recs = append(recs, it.ClientRecord)
		}
	}
	return recs, nil
}

func (s *ClientStore) FindByID(ctx context.Context, id int) (types.ClientRecord, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.table,
		Key:            s.key(skClient(id)),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
	}
	if out.Item == nil {
		return types.ClientRecord{}, types.ErrNotFound
	}
	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return types.ClientRecord{}, err
	}
	return it.ClientRecord, nil
}

func (s *ClientStore) Update(ctx context.Context, id int, fields types.ClientFields) (types.ClientRecord, error) {
	if fields.Empty() {
		return s.FindByID(ctx, id)
	}
	set := map[string]string{}
	if fields.Name != "" {
		set["name"] = fields.Name
	}
	if fields.Email != "" {
		set["email"] = fields.Email
	}
	if fields.Phone != "" {
		set["phone"] = fields.Phone
	}
	return s.updateIfExists(ctx, id, set, nil)
}

func (s *ClientStore) Deactivate(ctx context.Context, id int) (types.ClientRecord, error) {
	return s.updateIfExists(ctx, id, nil, map[string]bool{"active": false})
}

// updateIfExists applies SET assignments to an existing record; a failed existence
// condition means the id is unknown.
func (s *ClientStore) updateIfExists(ctx context.Context, id int, strs map[string]string, bools map[string]bool) (types.ClientRecord, error) {
	expr := "SET "
	names := map[string]string{}
	values := map[string]ddbTypes.AttributeValue{}
	add := func(attr string, v ddbTypes.AttributeValue) {
		if len(names) > 0 {
			expr += ", "
		}
		expr += "#" + attr + " = :" + attr
		names["#"+attr] = attr
		values[":"+attr] = v
	}
	for _, attr := range []string{"name", "email", "phone"} {
		if v, ok := strs[attr]; ok {
			add(attr, &ddbTypes.AttributeValueMemberS{Value: v})
		}
	}
	for attr, v := range bools {
		add(attr, &ddbTypes.AttributeValueMemberBOOL{Value: v})
	}
	if exp := s.expiresAt(); exp > 0 {
		add(attrTTL, &ddbTypes.AttributeValueMemberN{Value: itoa(exp)})
	}

	out, err := s.cli.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &s.table,
		Key:                       s.key(skClient(id)),
		UpdateExpression:          awsString(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(PK) AND attribute_exists(SK)"),
		ReturnValues:              ddbTypes.ReturnValueAllNew,
	})
	if err != nil {
		var cc *ddbTypes.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return types.ClientRecord{}, types.ErrNotFound
		}
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
	}
	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return types.ClientRecord{}, err
	}
	return it.ClientRecord, nil
}

// ClearAll deletes every item of the session, counter included.
func (s *ClientStore) ClearAll(ctx context.Context) error {
	p := dynamodb.NewQueryPaginator(s.cli, &dynamodb.QueryInput{
		TableName:              &s.table,
		KeyConditionExpression: awsString("PK = :pk"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkSession(s.session)},
		},
		ProjectionExpression: awsString("PK, SK"),
		ConsistentRead:       awsBool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: &s.table,
				Key: map[string]ddbTypes.AttributeValue{
					"PK": item["PK"],
					"SK": item["SK"],
				},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ClientStore) key(sk string) map[string]ddbTypes.AttributeValue {
	return map[string]ddbTypes.AttributeValue{
		"PK": &ddbTypes.AttributeValueMemberS{Value: pkSession(s.session)},
		"SK": &ddbTypes.AttributeValueMemberS{Value: sk},
	}
}

func (s *ClientStore) expiresAt() int64 {
	if s.ttl <= 0 {
		return 0
	}
	return time.Now().Add(s.ttl).Unix()
}

func itoa(i int64) string { return strconv.FormatInt(i, 10) }
