package bootstrap

import (
	"time"

	"ballotbox/contexts/governance/voting-store/domain/entities"
)

// demoSeed returns the sample votings used for local demos: one awaiting
// reveal, one still active, one already revealed.
func demoSeed(enabled bool) []entities.Voting {
	if !enabled {
		return nil
	}
	now := time.Now().UTC()
	return []entities.Voting{
		{
			VotingID:    1,
			Title:       "Best Blockchain for DeFi",
			Description: "Which blockchain do you think is the best for DeFi applications? Consider factors like transaction speed, fees, ecosystem, and security when making your choice.",
			CreatorID:   "0x83A22d02D374F0Aec2C4425130922C93046aEe6a",
			Options: []entities.VotingOption{
				{OptionID: 1, Text: "Ethereum", VoteCount: 15},
				{OptionID: 2, Text: "Base", VoteCount: 45},
				{OptionID: 3, Text: "Polygon", VoteCount: 25},
				{OptionID: 4, Text: "Arbitrum", VoteCount: 15},
			},
			Capacity:         100,
			ParticipantCount: 100,
			Status:           entities.VotingStatusAwaitingReveal,
			CreatedAt:        now.Add(-72 * time.Hour),
			UpdatedAt:        now.Add(-24 * time.Hour),
		},
		{
			VotingID:    2,
			Title:       "Next Feature Priority",
			Description: "What feature should we implement next in our mini-app? Your vote will help us prioritize development efforts for the upcoming release.",
			CreatorID:   "0xabcd...efgh",
			Options: []entities.VotingOption{
				{OptionID: 1, Text: "NFT Marketplace", VoteCount: 23},
				{OptionID: 2, Text: "DeFi Staking", VoteCount: 31},
				{OptionID: 3, Text: "Social Features", VoteCount: 18},
				{OptionID: 4, Text: "Gaming Integration", VoteCount: 17},
			},
			Capacity:         200,
			ParticipantCount: 89,
			Status:           entities.VotingStatusActive,
			CreatedAt:        now.Add(-48 * time.Hour),
			UpdatedAt:        now.Add(-2 * time.Hour),
		},
		{
			VotingID:    3,
			Title:       "Favorite Crypto Project",
			Description: "Which crypto project has the most potential in 2025? Consider innovation, adoption, and long-term sustainability in your decision.",
			CreatorID:   "0x9876...1234",
			Options: []entities.VotingOption{
				{OptionID: 1, Text: "Coinbase", VoteCount: 20},
				{OptionID: 2, Text: "Uniswap", VoteCount: 15},
				{OptionID: 3, Text: "Chainlink", VoteCount: 8},
				{OptionID: 4, Text: "AAVE", VoteCount: 7},
			},
			Capacity:         50,
			ParticipantCount: 50,
			Status:           entities.VotingStatusRevealed,
			CreatedAt:        now.Add(-96 * time.Hour),
			UpdatedAt:        now.Add(-48 * time.Hour),
		},
	}
}
