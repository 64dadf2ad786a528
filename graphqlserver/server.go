package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"sportloan.GO/graphql"
	gqlmodels "sportloan.GO/graphql/models"
	"sportloan.GO/graphql/registry"
	borrowEntity "sportloan.GO/model/entity/borrow"
	borrowService "sportloan.GO/service/borrow"
	equipmentService "sportloan.GO/service/equipment"
	memberService "sportloan.GO/service/member"
	reportService "sportloan.GO/service/report"
)

// RootResolver implements the Query fields, delegating to the services.
type RootResolver struct {
	db *gorm.DB
}

func NewRootResolver(db *gorm.DB) *RootResolver {
	return &RootResolver{db: db}
}

// ItemsArgs matches the items query arguments.
type ItemsArgs struct {
	Q      *string
	TypeID *int32
}

func (r *RootResolver) Items(ctx context.Context, args ItemsArgs) ([]*gqlmodels.Item, error) {
	svc := equipmentService.NewEquipmentService(r.db)
	q := ""
	if args.Q != nil {
		q = *args.Q
	}
	typeID := uint(0)
	if args.TypeID != nil && *args.TypeID > 0 {
		typeID = uint(*args.TypeID)
	}
	var err error
	var list []*gqlmodels.Item
	if q != "" || typeID > 0 {
		found, e := svc.Search(q, typeID)
		err = e
		for i := range found {
			list = append(list, mapItem(&found[i]))
		}
	} else {
		found, e := svc.List()
		err = e
		for i := range found {
			list = append(list, mapItem(&found[i]))
		}
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*gqlmodels.Item{}
	}
	return list, nil
}

// ItemArgs matches the item query arguments.
type ItemArgs struct {
	ID int32
}

func (r *RootResolver) Item(ctx context.Context, args ItemArgs) (*gqlmodels.Item, error) {
	svc := equipmentService.NewEquipmentService(r.db)
	item, err := svc.Get(uint(args.ID))
	if err != nil {
		if err == equipmentService.ErrItemNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapItem(item), nil
}

func (r *RootResolver) ItemTypes(ctx context.Context) ([]*gqlmodels.ItemType, error) {
	svc := equipmentService.NewEquipmentService(r.db)
	types, err := svc.ListTypes()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.ItemType, 0, len(types))
	for _, t := range types {
		out = append(out, &gqlmodels.ItemType{TypeID: int32(t.TypeID), Name: t.Name})
	}
	return out, nil
}

// MembersArgs matches the members query arguments.
type MembersArgs struct {
	Q *string
}

func (r *RootResolver) Members(ctx context.Context, args MembersArgs) ([]*gqlmodels.Member, error) {
	svc := memberService.NewMemberService(r.db)
	var (
		err error
	)
	out := []*gqlmodels.Member{}
	if args.Q != nil && *args.Q != "" {
		found, e := svc.Search(*args.Q)
		err = e
		for i := range found {
			m := found[i]
			out = append(out, &gqlmodels.Member{
				MemberID:     int32(m.MemberID),
				IdentityCode: m.IdentityCode,
				Title:        m.Title,
				FirstName:    m.FirstName,
				LastName:     m.LastName,
				Advisor:      m.Advisor,
			})
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	found, err := svc.List()
	if err != nil {
		return nil, err
	}
	for i := range found {
		m := found[i]
		out = append(out, &gqlmodels.Member{
			MemberID:     int32(m.MemberID),
			IdentityCode: m.IdentityCode,
			Title:        m.Title,
			FirstName:    m.FirstName,
			LastName:     m.LastName,
			Advisor:      m.Advisor,
		})
	}
	return out, nil
}

// BorrowalsArgs matches the borrowals query arguments.
type BorrowalsArgs struct {
	Status *string
}

func (r *RootResolver) Borrowals(ctx context.Context, args BorrowalsArgs) ([]*gqlmodels.Borrowal, error) {
	svc := borrowService.NewBorrowService(r.db)
	status := borrowEntity.StatusOpen
	if args.Status != nil && *args.Status == "returned" {
		status = borrowEntity.StatusReturned
	}
	found, err := svc.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Borrowal, 0, len(found))
	for i := range found {
		out = append(out, mapBorrowal(&found[i]))
	}
	return out, nil
}

// OpenBorrowalArgs matches the openBorrowal query arguments.
type OpenBorrowalArgs struct {
	Identity string
}

func (r *RootResolver) OpenBorrowal(ctx context.Context, args OpenBorrowalArgs) (*gqlmodels.Borrowal, error) {
	svc := borrowService.NewBorrowService(r.db)
	b, err := svc.FindOpenByIdentity(args.Identity)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return mapBorrowal(b), nil
}

func (r *RootResolver) Dashboard(ctx context.Context) (*gqlmodels.Dashboard, error) {
	svc := reportService.NewReportService(r.db)
	d, err := svc.Dashboard()
	if err != nil {
		return nil, err
	}
	return &gqlmodels.Dashboard{
		TotalItems:     int32(d.TotalItems),
		OpenBorrowals:  int32(d.OpenBorrowals),
		AvailableUnits: int32(d.AvailableUnits),
		TotalMembers:   int32(d.TotalMembers),
	}, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), NewRootResolver(db), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
