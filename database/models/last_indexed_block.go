package models

// LastIndexedBlock is the last block indexed for a given chain, so a restart
// does not reprocess it.
type LastIndexedBlock struct {
	Chain       string `json:"chain" bson:"chain"`
	BlockNumber uint64 `json:"block_number" bson:"block_number"`
}
