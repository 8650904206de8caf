package domain

import (
	"fmt"
	"strings"
)

const (
	// HardhatChainID is the chain id of the local Hardhat development node
	HardhatChainID uint64 = 31337
	// SepoliaChainID is the chain id of the Sepolia public test network
	SepoliaChainID uint64 = 11155111
)

// Network describes a ledger network the client can target
type Network struct {
	Name    string
	ChainID uint64
	RPCURL  string
}

// KnownNetworks lists the networks that can be selected by name
var KnownNetworks = []Network{
	{Name: "localhost", ChainID: HardhatChainID, RPCURL: "http://127.0.0.1:8545"},
	{Name: "sepolia", ChainID: SepoliaChainID, RPCURL: "https://sepolia.infura.io/v3/%s"},
}

// LookupNetwork returns the known network with the given name.
// "hardhat" is accepted as an alias of "localhost".
func LookupNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "hardhat" {
		name = "localhost"
	}
	for _, n := range KnownNetworks {
		if n.Name == name {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unknown network: %q", name)
}

// ResolveRPCURL fills the provider key into templated RPC URLs
func (n Network) ResolveRPCURL(infuraKey string) string {
	if strings.Contains(n.RPCURL, "%s") {
		return fmt.Sprintf(n.RPCURL, infuraKey)
	}
	return n.RPCURL
}
