package services

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// NumberGenerator issues bill and receipt numbers. Bill numbers come from a
// snowflake node so they are unique across instances and never reused.
type NumberGenerator struct {
	node          *snowflake.Node
	billPrefix    string
	receiptPrefix string
}

// NewNumberGenerator creates a generator for the given snowflake node (0..1023)
func NewNumberGenerator(nodeID int64, billPrefix, receiptPrefix string) (*NumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &NumberGenerator{
		node:          node,
		billPrefix:    billPrefix,
		receiptPrefix: receiptPrefix,
	}, nil
}

// NextBillNo returns a new bill number such as BL-1795063321583276032
func (g *NumberGenerator) NextBillNo() string {
	return fmt.Sprintf("%s-%s", g.billPrefix, g.node.Generate().String())
}

// NextReceiptNo returns a new receipt number such as RC-3F2A9C0D1B7E
func (g *NumberGenerator) NextReceiptNo() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", g.receiptPrefix, strings.ToUpper(id[:12]))
}
