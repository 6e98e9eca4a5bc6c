package domain

const (
	// Solana program and RPC constants
	SPL_TOKEN_PROGRAM_ID      = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	SPL_TOKEN_2022_PROGRAM_ID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	DEFAULT_COMMITMENT        = "confirmed"

	// MINT_ADDRESS_LENGTH is the decoded byte length of a Solana public key
	MINT_ADDRESS_LENGTH = 32
)
