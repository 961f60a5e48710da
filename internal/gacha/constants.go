package gacha

// ============================================================================
// Draw Sizing
// ============================================================================

// OversizedDrawThreshold is the largest draw count served synchronously
// in one batch. Requests above it must go through the admission-controlled
// sub-batched path.
const OversizedDrawThreshold = 1000

// OversizedSubBatchSize is how many draws an oversized request settles
// per sub-batch. Each sub-batch is drawn, granted, and audit-logged as a
// unit; a failure forfeits the failing sub-batch and refunds the rest.
const OversizedSubBatchSize = 2000

// ============================================================================
// History
// ============================================================================

// DefaultHistoryLimit is used when a history request does not name a limit.
const DefaultHistoryLimit = 20

// MaxHistoryLimit caps how many audit rows one history request may return.
const MaxHistoryLimit = 100

// ============================================================================
// Display Names
// ============================================================================

// CoinsRewardName labels coin rewards in descriptors and audit rows;
// coins have no template to take a name from.
const CoinsRewardName = "Coins"
