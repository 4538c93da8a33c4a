package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/pharmaflash/internal/logger"
)

const (
	DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	imageBaseURL   = "https://pubchem.ncbi.nlm.nih.gov/image/imgsrv.fcgi"
)

// ErrNotFound is returned when PubChem knows no compound by the given name or CID.
var ErrNotFound = errors.New("pubchem: compound not found")

type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a client for the PUG REST API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.Default().WithPrefix("pubchem"),
	}
}

// Compound is the subset of PubChem metadata used to fill study items.
type Compound struct {
	CID             int64  `json:"cid"`
	Name            string `json:"name"`
	Formula         string `json:"formula"`
	MolecularWeight string `json:"molecular_weight"`
	Smiles          string `json:"smiles"`
	IUPACName       string `json:"iupac_name"`
	ImageURL        string `json:"image_url"`
}

type cidsResp struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

type propertiesResp struct {
	PropertyTable struct {
		Properties []struct {
			CID                int64      `json:"CID"`
			MolecularFormula   string     `json:"MolecularFormula"`
			MolecularWeight    flexString `json:"MolecularWeight"`
			CanonicalSMILES    string     `json:"CanonicalSMILES"`
			ConnectivitySMILES string     `json:"ConnectivitySMILES"`
			IUPACName          string     `json:"IUPACName"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// flexString accepts both JSON strings and numbers. PubChem has served
// MolecularWeight as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.TrimSpace(string(b)))
	return nil
}

// ImageURL returns the large structure image for cid.
func ImageURL(cid int64) string {
	return fmt.Sprintf("%s?cid=%d&t=l", imageBaseURL, cid)
}

// Lookup resolves name to its first CID and fetches its properties.
func (c *Client) Lookup(ctx context.Context, name string) (*Compound, error) {
	log := logger.FromContext(ctx).WithPrefix("pubchem").WithField("name", name)
	log.Debug("looking up compound")

	cid, err := c.FetchCID(ctx, name)
	if err != nil {
		return nil, err
	}
	compound, err := c.FetchProperties(ctx, cid)
	if err != nil {
		return nil, err
	}
	compound.Name = name
	log.Info("resolved compound: cid=%d, formula=%s", compound.CID, compound.Formula)
	return compound, nil
}

func (c *Client) FetchCID(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNotFound
	}
	endpoint := fmt.Sprintf("%s/compound/name/%s/cids/JSON", c.baseURL, url.PathEscape(name))

	var out cidsResp
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return 0, err
	}
	if len(out.IdentifierList.CID) == 0 || out.IdentifierList.CID[0] == 0 {
		return 0, ErrNotFound
	}
	return out.IdentifierList.CID[0], nil
}

func (c *Client) FetchProperties(ctx context.Context, cid int64) (*Compound, error) {
	endpoint := fmt.Sprintf("%s/compound/cid/%s/property/MolecularFormula,MolecularWeight,CanonicalSMILES,IUPACName/JSON",
		c.baseURL, strconv.FormatInt(cid, 10))

	var out propertiesResp
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if len(out.PropertyTable.Properties) == 0 {
		return nil, ErrNotFound
	}
	p := out.PropertyTable.Properties[0]
	smiles := p.CanonicalSMILES
	if smiles == "" {
		smiles = p.ConnectivitySMILES
	}
	return &Compound{
		CID:             cid,
		Formula:         p.MolecularFormula,
		MolecularWeight: string(p.MolecularWeight),
		Smiles:          smiles,
		IUPACName:       p.IUPACName,
		ImageURL:        ImageURL(cid),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	log := logger.FromContext(ctx).WithPrefix("pubchem")
	log.Debug("fetching: %s", endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return fmt.Errorf("pubchem status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		log.Error("failed to decode response: %v", err)
		return err
	}
	return nil
}
