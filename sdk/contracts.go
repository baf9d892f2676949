package sdk

import (
	"fmt"

	"github.com/wormhole-foundation/worm/sdk/vaa"
)

// Contracts holds the addresses of the Wormhole contracts deployed on one chain, in the chain's native format.
// Empty fields have no known deployment.
type Contracts struct {
	Core            string
	TokenBridge     string
	NFTBridge       string
	WormholeRelayer string
}

func (c Contracts) get(module vaa.Module) string {
	switch module {
	case vaa.ModuleCore:
		return c.Core
	case vaa.ModuleTokenBridge:
		return c.TokenBridge
	case vaa.ModuleNFTBridge:
		return c.NFTBridge
	case vaa.ModuleWormholeRelayer:
		return c.WormholeRelayer
	}
	return ""
}

// ContractAddress returns the address of module on chain in network.
func ContractAddress(network Network, chain vaa.ChainID, module vaa.Module) (string, error) {
	table, ok := knownContracts[network]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidNetwork, network)
	}
	if addr := table[chain].get(module); addr != "" {
		return addr, nil
	}
	return "", fmt.Errorf("%w: no %s contract for %s on %s", ErrNotFound, module, chain, network)
}

const (
	mainnetRelayer = "0x27428DD2d3DD32A4D7f7C497eAaa23130d894911"
	testnetRelayer = "0x7B1bD7a6b4E61c2a123AC6BC2cbfC614437D0470"
	devnetRelayer  = "0xb98F46E96cb1F519C333FdFB5CCe0B13E0300ED4"
)

var knownContracts = map[Network]map[vaa.ChainID]Contracts{
	Mainnet: {
		vaa.ChainIDSolana: {
			Core:        "worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth",
			TokenBridge: "wormDTUJ6AWPNvk59vGQbDvGJmqbDTdgWgAqcLBCgUb",
			NFTBridge:   "WnFt12ZrnzZrFZkt2xsNsaNWoQribnuQ5B5FrDbwDhD",
		},
		vaa.ChainIDEthereum: {
			Core:            "0x98f3c9e6E3fAce36bAAd05FE09d375Ef1464288B",
			TokenBridge:     "0x3ee18B2214AFF97000D974cf647E7C347E8fa585",
			NFTBridge:       "0x6FFd7EdE62328b3Af38FCD61461Bbfc52F5651fE",
			WormholeRelayer: mainnetRelayer,
		},
		vaa.ChainIDTerra: {
			Core:        "terra1dq03ugtd40zu9hcgdzrsq6z2z4hwhc9tqk2uy5",
			TokenBridge: "terra10nmmwe8r3g99a9newtqa7a75xfgs2e8z87r2sf",
		},
		vaa.ChainIDBSC: {
			Core:            "0x98f3c9e6E3fAce36bAAd05FE09d375Ef1464288B",
			TokenBridge:     "0xB6F6D86a8f9879A9c87f643768d9efc38c1Da6E7",
			NFTBridge:       "0x5a58505a96D1dbf8dF91cB21B54419FC36e93fdE",
			WormholeRelayer: mainnetRelayer,
		},
		vaa.ChainIDPolygon: {
			Core:            "0x7A4B5a56256163F07b2C80A7cA55aBE66c4ec4d7",
			TokenBridge:     "0x5a58505a96D1dbf8dF91cB21B54419FC36e93fdE",
			NFTBridge:       "0x90BBd86a6Fe93D3bc3ed6335935447E75fAb7fCf",
			WormholeRelayer: mainnetRelayer,
		},
		vaa.ChainIDAvalanche: {
			Core:            "0x54a8e5f9c4CbA08F9943965859F6c34eAF03E26c",
			TokenBridge:     "0x0e082F06FF657D94310cB8cE8B0D9a04541d8052",
			NFTBridge:       "0xf7B6737Ca9c4e08aE573F75A97B73D7a813f5De5",
			WormholeRelayer: mainnetRelayer,
		},
	},
	Testnet: {
		vaa.ChainIDSolana: {
			Core:        "3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5",
			TokenBridge: "DZnkkTmCiFWfYTfT41X3Rd1kDgozqzxWaHqsw6W4x2oe",
			NFTBridge:   "2rHhojZ7hpu1zA91nvZmT8TqWWvMcKmmNBCr2mKTtMq4",
		},
		vaa.ChainIDEthereum: {
			Core:        "0x706abc4E45D419950511e474C7B9Ed348A4a716c",
			TokenBridge: "0xF890982f9310df57d00f659cf4fd87e65adEd8d7",
			NFTBridge:   "0xD8E4C2DbDd2e2bd8F1336EA691dBFF6952B1a6eB",
		},
		vaa.ChainIDBSC: {
			Core:        "0x68605AD7b15c732a30b1BbC62BE8F2A509D74b4D",
			TokenBridge: "0x9dcF9D205C9De35334D646BeE44b2D2859712A09",
			NFTBridge:   "0xcD16E5613EF35599dc82B24Cb45B5A93D779f1EE",
		},
		vaa.ChainIDPolygon: {
			Core:        "0x0CBE91CF822c73C2315FB05100C2F714765d5c20",
			TokenBridge: "0x377D55a7928c046E18eEbb61977e714d2a76472a",
			NFTBridge:   "0x51a02d0dcb5e52F5b92bdAA38FA013C91c7309A9",
		},
		vaa.ChainIDAvalanche: {
			Core:        "0x7bbcE28e64B3F8b84d876Ab298393c38ad7aac4C",
			TokenBridge: "0x61E44E506Ca5659E6c0bba9b678586fA2d729756",
			NFTBridge:   "0xD601BAf2EEE3C028344471684F6b27E789D9075D",
		},
		vaa.ChainIDAlgorand: {
			Core:        "86525623",
			TokenBridge: "86525641",
		},
		vaa.ChainIDNear: {
			Core:        "wormhole.wormhole.testnet",
			TokenBridge: "token.wormhole.testnet",
		},
		vaa.ChainIDAptos: {
			Core:        "0x5bc11445584a763c1fa7ed39081f1b920954da14e04b32440cba863d03e19625",
			TokenBridge: "0x576410486a2da45eee6c949c995670112ddf2fbeedab20350d506328eefc9d4f",
		},
		vaa.ChainIDSepolia: {
			Core:            "0x4a8bc80Ed5a4067f1CCf107057b8270E0cC11A78",
			TokenBridge:     "0xDB5492265f6038831E89f495670FF909aDe94bd9",
			NFTBridge:       "0x6a0B52ac198e4870e5F3797d5B403838a5bbFD99",
			WormholeRelayer: testnetRelayer,
		},
		vaa.ChainIDArbitrumSepolia: {
			Core:            "0x6b9C8671cdDC8dEab9c719bB87cBd3e782bA6a35",
			TokenBridge:     "0xC7A204bDBFe983FCD8d8E61D02b475D4073fF97e",
			NFTBridge:       "0x23908A62110e21C04F3A4e011d24F901F911744A",
			WormholeRelayer: testnetRelayer,
		},
		vaa.ChainIDBaseSepolia: {
			Core:        "0x79A1027a6A159502049F10906D333EC57E95F083",
			TokenBridge: "0x86F55A04690fd7815A3D802bD587e83eA888B239",
			NFTBridge:   "0x268557122Ffd64c85750d630b716471118F323c8",
		},
	},
	Devnet: {
		vaa.ChainIDSolana: {
			Core:        "Bridge1p5gheXUvJ6jGWGeCsgPKgnE3YgdGKRVCMY9o",
			TokenBridge: "B6RHG3mfcckmrYN1UhmJzyS1XX3fZKbkeUcpJe9Sy3FE",
			NFTBridge:   "NFTWqJR8YnRVqPDvTJrYuLrQDitTG5AScqbeghi4zSA",
		},
		vaa.ChainIDEthereum: {
			Core:            "0xC89Ce4735882C9F0f0FE26686c53074E09B0D550",
			TokenBridge:     "0x0290FB167208Af455bB137780163b7B7a9a10C16",
			NFTBridge:       "0x26b4afb60d6c903165150c6f0aa14f8016be4aec",
			WormholeRelayer: devnetRelayer,
		},
		vaa.ChainIDBSC: {
			Core:            "0xC89Ce4735882C9F0f0FE26686c53074E09B0D550",
			TokenBridge:     "0x0290FB167208Af455bB137780163b7B7a9a10C16",
			NFTBridge:       "0x26b4afb60d6c903165150c6f0aa14f8016be4aec",
			WormholeRelayer: devnetRelayer,
		},
		vaa.ChainIDTerra: {
			Core:        "terra14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9ssrc8au",
			TokenBridge: "terra1nc5tatafv6eyq7llkr2gv50ff9e22mnf70qgjlv737ktmt4eswrquka9l6",
		},
		vaa.ChainIDTerra2: {
			Core:        "terra14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9ssrc8au",
			TokenBridge: "terra1nc5tatafv6eyq7llkr2gv50ff9e22mnf70qgjlv737ktmt4eswrquka9l6",
		},
		vaa.ChainIDAlgorand: {
			Core:        "1004",
			TokenBridge: "1006",
		},
		vaa.ChainIDNear: {
			Core:        "wormhole.test.near",
			TokenBridge: "token.test.near",
		},
		vaa.ChainIDAptos: {
			Core:        "0xde0036a9600559e295d5f6802ef6f3f802f510366e0c23912b0655d972166017",
			TokenBridge: "0x84a5f374d29fc77e370014dce4fd6a55b58ad608de8074b0be5571701724da31",
		},
	},
}
